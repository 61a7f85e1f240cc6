// Package textforms parses compact SMS form submissions.
//
// A submission has the shape
//
//	<version>!<form code>!<field1>#<field2>#...
//
// Fields are matched positionally against a domain.FormSchema. Field
// problems never abort parsing; they are attached to the resulting
// domain.DataRecord as error entries.
package textforms
