package ir

type expandFrame struct {
	index   int
	kind    TagKind
	expands bool
}

// PropagateExpand marks every group that must break because it contains a
// hard or empty line, multi-line text, an expand-parent element or an
// expanded child group. Marked groups get ExpandPropagated unless they are
// already ExpandTrue.
//
// Best-fitting variants are a boundary: what happens inside a variant does
// not expand the groups around the best-fitting element. Conditional
// content is a boundary too. Interned documents are processed once.
func PropagateExpand(d Document) {
	propagate(d)
}

func propagate(d Document) bool {
	var (
		stack    []expandFrame
		topLevel bool
	)
	mark := func() {
		if len(stack) == 0 {
			topLevel = true
			return
		}
		stack[len(stack)-1].expands = true
	}

	for i := range d {
		e := &d[i]
		switch e.Kind {
		case KindLine:
			if e.Line.IsHard() {
				mark()
			}
		case KindExpandParent:
			mark()
		case KindText, KindVerbatim:
			if e.IsMultiline() {
				mark()
			}
		case KindBestFitting:
			for _, v := range e.Variants {
				propagate(v)
			}
		case KindInterned:
			in := e.Interned
			if !in.propagated {
				in.propagated = true
				in.expands = propagate(in.Doc)
			}
			if in.expands {
				mark()
			}
		case KindTag:
			if e.Tag.Kind != TagGroup && e.Tag.Kind != TagConditionalContent {
				continue
			}
			if e.Tag.Start {
				stack = append(stack, expandFrame{index: i, kind: e.Tag.Kind})
				continue
			}
			if len(stack) == 0 {
				continue
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if frame.kind != TagGroup {
				continue
			}
			startTag := &d[frame.index].Tag
			if frame.expands && startTag.Expand == ExpandNone {
				startTag.Expand = ExpandPropagated
			}
			if startTag.Expand != ExpandNone {
				mark()
			}
		case KindSpace, KindLineSuffixBoundary:
		}
	}
	return topLevel
}
