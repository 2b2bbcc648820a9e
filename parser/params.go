package parser

import "github.com/halcyon-term/vtcore/style"

// maxNumericValue is the clamp ceiling for any single numeric parameter
// token, per spec.md §4.4.
const maxNumericValue = 65535

// maxTopParams and maxSubParams are the spec.md §4.4 accumulation caps.
const (
	maxTopParams = 16
	maxSubParams = 16
)

// paramCollector accumulates a CSI/DCS parameter list as it streams in
// one digit/':'/';' at a time, preserving colon-separated sub-parameters
// so SGR's true-color colon form survives intact (spec.md §4.4).
type paramCollector struct {
	top    []style.Param
	cur    style.Param // top-level slot currently being built
	curSet bool        // true once any digit has been seen for cur
	sub    []style.Param
	subCur style.Param
	subSet bool
	inSub  bool
	sawAny bool // true once any digit, ';' or ':' has been seen
}

func (pc *paramCollector) reset() {
	pc.top = pc.top[:0]
	pc.cur = style.Param{}
	pc.curSet = false
	pc.sub = pc.sub[:0]
	pc.subCur = style.Param{}
	pc.subSet = false
	pc.inSub = false
	pc.sawAny = false
}

// digit feeds one ASCII digit byte ('0'-'9').
func (pc *paramCollector) digit(b byte) {
	pc.sawAny = true
	d := int(b - '0')
	if pc.inSub {
		if !pc.subSet {
			pc.subCur = style.Param{}
			pc.subSet = true
		}
		pc.subCur.Value = clampParam(pc.subCur.Value*10 + d)
	} else {
		if !pc.curSet {
			pc.cur = style.Param{}
			pc.curSet = true
		}
		pc.cur.Value = clampParam(pc.cur.Value*10 + d)
	}
}

func clampParam(v int) int {
	if v > maxNumericValue {
		return maxNumericValue
	}
	return v
}

// semicolon finalizes the current top-level slot (folding in any
// accumulated sub-parameters) and starts a new one.
func (pc *paramCollector) semicolon() {
	pc.sawAny = true
	pc.flushSub()
	pc.pushTop()
}

// colon starts (or continues) sub-parameter accumulation for the current
// top-level slot. The FIRST colon after a top-level value just switches
// into sub mode (the top value itself, e.g. "38", is not a sub-param).
// Every subsequent colon finalizes the sub slot built so far and starts a
// new one.
func (pc *paramCollector) colon() {
	pc.sawAny = true
	if pc.inSub {
		pc.pushSub()
	}
	pc.inSub = true
	pc.subCur = style.Param{}
	pc.subSet = false
}

func (pc *paramCollector) pushSub() {
	if !pc.subSet {
		pc.subCur = style.Param{Empty: true}
	} else {
		pc.subCur.Empty = false
	}
	if len(pc.sub) < maxSubParams {
		pc.sub = append(pc.sub, pc.subCur)
	}
}

func (pc *paramCollector) flushSub() {
	if !pc.inSub {
		return
	}
	pc.pushSub()
	pc.cur.Sub = append([]style.Param(nil), pc.sub...)
	pc.sub = pc.sub[:0]
	pc.subCur = style.Param{}
	pc.subSet = false
	pc.inSub = false
}

func (pc *paramCollector) pushTop() {
	if !pc.curSet {
		pc.cur.Empty = true
	} else {
		pc.cur.Empty = false
	}
	if len(pc.top) < maxTopParams {
		pc.top = append(pc.top, pc.cur)
	}
	pc.cur = style.Param{}
	pc.curSet = false
}

// finish finalizes and returns the parameter list built so far, including
// a trailing slot even if the sequence ended mid-number (no trailing ';').
// A sequence that never saw a digit, ';' or ':' (bare "CSI m") returns nil,
// which style.MergeSGR and the CSI handlers treat as an implicit default.
func (pc *paramCollector) finish() []style.Param {
	if !pc.sawAny {
		return nil
	}
	pc.flushSub()
	pc.pushTop()
	return append([]style.Param(nil), pc.top...)
}
