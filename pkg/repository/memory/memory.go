package memory

import (
	"github.com/vellum-crm/vellum/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	metadata   *metadataRepository
	descriptor *descriptorRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		metadata:   newMetadataRepository(),
		descriptor: newDescriptorRepository(),
	}
}

func (m *Memory) Metadata() interfaces.MetadataRepository {
	return m.metadata
}

func (m *Memory) Descriptor() interfaces.DescriptorRepository {
	return m.descriptor
}

// Close is a no-op; the in-memory store holds no backend connection.
func (m *Memory) Close() error {
	return nil
}
