// Package harness provides conformance testing for rule documents.
//
// A scenario names a configuration document and a list of queries with
// their expected answers. The harness loads the document through the
// engine, runs every query in order, checks the expectations, and records
// a trace that can be compared against a golden file.
//
// # Scenario Format
//
//	name: qt_types
//	description: "Integer formats resolve to Qt types"
//	config: ../configs/qt.yaml      # relative to the scenario file
//	policy: first-regex             # or "continue"; optional
//	load_id: qt-load                # fixed load ID; optional
//	warnings: 1                     # expected dropped patterns; optional
//	types:
//	  - type: integer
//	    format: int64
//	    expect:
//	      base_name: int64
//	      attributes: { initializer: "0" }   # subset match
//	      lists: { imports: [ "<QtCore/QtGlobal>" ] }
//	      matched: true
//	identifiers:
//	  - name: id
//	    scope: Foo
//	    expect: Foo/id
//
// A scenario may instead expect the document to be rejected:
//
//	load_error:
//	  code: E203
//	  contains: "too many entries"
//
// # Deterministic Testing
//
// Scenarios run with a fixed load ID and a sequence counter starting at 1,
// so the same scenario always produces a byte-identical trace.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/qt_types.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
