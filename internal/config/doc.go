// Package config provides the YAML configuration of the generator.
//
// Every key is optional; omitted keys take the defaults below.
//
//	version: "1"
//	tag: orm                          # struct tag key: `orm:"title,default=untitled"`
//	directive: orm:column             # comment directive: //orm:column name=title
//	suffix: Marshaller                # generated type: <Model><suffix>
//	file_suffix: _marshaller.go       # generated file: <model_snake><file_suffix>
//	runtime_package: marshaller-generator/orm
//	entity_base: marshaller-generator/orm.Model
//	debug_unformatted: false          # keep <file>.unformatted.go when gofmt fails
//	comments: true                    # doc comments on generated declarations
//	watch:
//	  debounce: 200ms
//
// Command line flags override file values.
package config
