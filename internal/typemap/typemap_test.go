package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/bindgen/internal/models"
)

func TestTable_Lookup(t *testing.T) {
	layer := Layer()

	testCases := []struct {
		name     string
		typeName string
		label    string
		goType   string
		isBool   bool
		def      string
	}{
		{name: "bool", typeName: "bool", label: "bool", goType: "bool", isBool: true, def: "False"},
		{name: "string", typeName: "string", label: "str", goType: "string", def: "None"},
		{name: "platform int", typeName: "int", label: "int", goType: "int", def: "None"},
		{name: "fixed width unsigned", typeName: "uint16", label: "int", goType: "uint16", def: "None"},
		{name: "uintptr", typeName: "uintptr", label: "int", goType: "uintptr", def: "None"},
		{name: "float32", typeName: "float32", label: "float", goType: "float32", def: "None"},
		{name: "float64", typeName: "float64", label: "float", goType: "float64", def: "None"},
		{name: "duration", typeName: "time.Duration", label: "datetime.timedelta", goType: "time.Duration", def: "None"},
		{name: "string slice", typeName: "[]string", label: "list[str]", goType: "[]string", def: "None"},
		{name: "surrounding whitespace", typeName: "  int64 ", label: "int", goType: "int64", def: "None"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info := layer.Lookup(tc.typeName)
			assert.True(t, info.Supported())
			assert.Equal(t, tc.label, info.Label)
			assert.Equal(t, tc.goType, info.GoType)
			assert.Equal(t, tc.isBool, info.IsBool)
			assert.Equal(t, tc.def, info.Default)
			assert.NotEmpty(t, info.Getter)
		})
	}
}

func TestTable_LookupUnsupported(t *testing.T) {
	for _, typeName := range []string{"Foo", "*int", "map[string]string", "[]int", "", "chan int"} {
		info := Layer().Lookup(typeName)
		assert.False(t, info.Supported(), typeName)
		assert.Empty(t, info.Label, typeName)
		assert.Empty(t, info.GoType, typeName)
	}
}

func TestTable_DurationDivergesPerVariant(t *testing.T) {
	layerInfo := Layer().Lookup("time.Duration")
	serviceInfo := Service().Lookup("time.Duration")

	assert.Equal(t, "datetime.timedelta", layerInfo.Label)
	assert.Empty(t, layerInfo.Parse)

	assert.Equal(t, "str", serviceInfo.Label)
	assert.Equal(t, "string", serviceInfo.GoType)
	assert.Equal(t, "time.ParseDuration", serviceInfo.Parse)
}

func TestTable_LookupReturnsCopies(t *testing.T) {
	table := Layer()
	first := table.Lookup("time.Duration")
	first.Imports = append(first.Imports, "fmt")
	first.Imports[0] = "mutated"

	second := table.Lookup("time.Duration")
	assert.Equal(t, []string{"time"}, second.Imports)
}

func TestFor(t *testing.T) {
	assert.Equal(t, "layer", For(models.KindLayer).Name())
	assert.Equal(t, "service", For(models.KindService).Name())
	assert.True(t, For(models.KindService).Supports("[]string"))
	assert.False(t, For(models.KindLayer).Supports("[]byte"))
}
