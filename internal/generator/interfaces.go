package generator

import (
	"github.com/toyz/bindgen/internal/models"
	"github.com/toyz/bindgen/internal/typemap"
)

// CodeGenerator turns an extracted descriptor into a wrapper artifact
type CodeGenerator interface {
	Assemble(desc *models.ComponentDescriptor, table *typemap.Table, target models.Target) (*models.GeneratedArtifact, error)
}

var _ CodeGenerator = (*Assembler)(nil)
