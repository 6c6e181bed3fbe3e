package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Metadata() MetadataRepository
	Descriptor() DescriptorRepository

	// Close releases backend resources. Safe to call on backends without
	// underlying connections.
	Close() error
}
