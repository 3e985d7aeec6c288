// Package memdoc is an in-memory implementation of the scene host contracts.
//
// It behaves like a design tool's document closely enough to exercise the
// engine end to end: text nodes hold one attribute bundle per character,
// writes are rejected for fonts that have not been loaded, fonts that are not
// installed fail to load, and text nodes size themselves from their content.
//
// Documents are built in code or loaded from YAML fixtures:
//
//	fonts:
//	  - {family: Roboto, style: Regular}
//	pages:
//	  - name: Page 1
//	    children:
//	      - id: title
//	        type: TEXT
//	        x: 10
//	        y: 20
//	        characters: "Hello\nWorld"
//	        style: {fontFamily: Roboto, fontStyle: Regular, fontSize: 16, fill: "#222222"}
//	        runs:
//	          - {start: 6, end: 11, style: {fontStyle: Bold}}
package memdoc
