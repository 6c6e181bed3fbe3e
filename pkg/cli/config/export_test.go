package config

// NewAppConfigForTest creates an AppConfig with preset catalog paths for
// testing purposes
func NewAppConfigForTest(catalogPaths []string) *AppConfig {
	return &AppConfig{
		catalogPaths: catalogPaths,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}
