// Package program reads and writes resolved programs as documents.
//
// A document is the resolved AST spelled out in YAML, JSON or CUE with one
// member set per union value:
//
//	commands:
//	  - action:
//	      let:
//	        name: x
//	        expr: {lit: {i64: 3}}
//	  - action:
//	      expr:
//	        call:
//	          func: {name: Add, input: [i64, i64], output: i64}
//	          args:
//	            - var: {name: x, sort: i64}
//	            - var: {name: x, sort: i64}
//
// Variables are global unless marked `local: true`. Documents carry fully
// resolved sorts; nothing here infers types.
package program
