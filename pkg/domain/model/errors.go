package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by every repository backend
var (
	ErrDocumentNotFound   = goerr.New("metadata document not found")
	ErrDescriptorNotFound = goerr.New("field descriptor not found")
)
