package export

import "reflect"

// columnsOf extracts CSV header names from a row struct's "db" tags, in
// field order. The headers therefore always track the SELECT lists in the
// store's export queries, which use the same tags for scanning.
// Called once at package initialization, so reflection overhead is fine.
func columnsOf[T any]() []string {
	var zero T
	t := reflect.TypeOf(zero)

	cols := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, tag)
	}
	return cols
}
