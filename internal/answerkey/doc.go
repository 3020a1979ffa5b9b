// Package answerkey generates expected outputs ("answer keys") for
// activation-function hardware and software tests.
//
// Test vectors are read from one column of a spreadsheet as base-16 text,
// decoded to signed integers, passed through a step activation and written
// as fixed-width zero-padded decimal tokens, one per line, in input order:
//
//	Input Data        answerkey-bstep.mem
//	00           ->   00000001
//	01           ->   00000001
//	FF           ->   00000000   (FF is -1 at 8 bits)
//
// Every stage returns a *StageError wrapping one of the Err* kinds.
package answerkey
