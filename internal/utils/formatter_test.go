package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGoCode(t *testing.T) {
	src := "package retry\nimport (\n\"time\"\n\"fmt\"\n)\nfunc   f( ) {\nfmt.Println(time.Second)\n}\n"

	formatted, err := FormatGoCode("retry_gen.go", []byte(src))
	require.NoError(t, err)

	expected := "package retry\n\nimport (\n\t\"fmt\"\n\t\"time\"\n)\n\nfunc f() {\n\tfmt.Println(time.Second)\n}\n"
	assert.Equal(t, expected, string(formatted))

	again, err := FormatGoCode("retry_gen.go", formatted)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(again))
}

func TestFormatGoCode_DoesNotTouchImportSet(t *testing.T) {
	src := "package retry\n\nimport \"os\"\n\nfunc f() {}\n"

	formatted, err := FormatGoCode("retry_gen.go", []byte(src))
	require.NoError(t, err)
	assert.Contains(t, string(formatted), `import "os"`)
}

func TestFormatGoCode_InvalidSyntax(t *testing.T) {
	_, err := FormatGoCode("broken.go", []byte("package x\nfunc {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Go syntax")
	assert.Error(t, ValidateGoCode("package"))
	assert.NoError(t, ValidateGoCode("package x\n"))
}
