package logging

import "sort"

// A FieldsBuilder is a variable-sized array of interface{} with FlattenMapInterface, FlattenMapString,
// AddFields and Fields methods. The zero value for FieldsBuilder is an empty fields ready to use.
type FieldsBuilder struct {
	fields []interface{} // store fields to be returned by Fields()
}

// FlattenMapInterface adds the key-value pairs from map m to the builder in
// key order. No checks are done for duplicate fields.
func (b *FieldsBuilder) FlattenMapInterface(m map[string]interface{}) {
	for _, k := range sortedKeys(m) {
		b.fields = append(b.fields, k, m[k])
	}
}

// FlattenMapString adds the key-value pairs from map m to the builder in key order.
// No checks are done for duplicate fields.
func (b *FieldsBuilder) FlattenMapString(m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.fields = append(b.fields, k, m[k])
	}
}

// AddFields adds the provided fields to the builder.
// No checks are done for duplicate keys or partial key-value pairs.
func (b *FieldsBuilder) AddFields(val ...interface{}) {
	b.fields = append(b.fields, val...)
}

// Fields returns an array of interface from FieldsBuilder.
// Method does not remove duplicate key.
func (b FieldsBuilder) Fields() []interface{} {
	return b.fields
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
