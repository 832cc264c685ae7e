package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenMapInterfaceSortsKeys(t *testing.T) {
	fieldBuilder := &FieldsBuilder{}
	fieldBuilder.FlattenMapInterface(map[string]interface{}{"zeta": 3, "alpha": nil, "mid": "two"})
	assert.Equal(t, []interface{}{"alpha", nil, "mid", "two", "zeta", 3}, fieldBuilder.Fields())

	// a second map is appended after the first, sorted on its own
	fieldBuilder.FlattenMapInterface(map[string]interface{}{"event": "print line", "bytes": 13})
	assert.Equal(t, []interface{}{"alpha", nil, "mid", "two", "zeta", 3, "bytes", 13, "event", "print line"}, fieldBuilder.Fields())
}

func TestFlattenMapStringSortsKeys(t *testing.T) {
	fieldBuilder := &FieldsBuilder{}
	fieldBuilder.FlattenMapString(map[string]string{"sampled": "y", "component": "greeting", "": "empty"})
	assert.Equal(t, []interface{}{"", "empty", "component", "greeting", "sampled", "y"}, fieldBuilder.Fields())
}

func TestAddFields(t *testing.T) {
	fieldBuilder := &FieldsBuilder{}
	fieldBuilder.AddFields("operation", "say-hello")
	fieldBuilder.FlattenMapString(map[string]string{"b": "2", "a": "1"})
	fieldBuilder.AddFields("duration", nil)
	assert.Equal(t, []interface{}{"operation", "say-hello", "a", "1", "b", "2", "duration", nil}, fieldBuilder.Fields())

	empty := FieldsBuilder{}
	empty.AddFields()
	assert.Empty(t, empty.Fields())
}
