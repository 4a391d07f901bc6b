package source

// scrub produces two views of Kotlin source with regions blanked out by
// spaces, preserving byte offsets and line structure:
//
//   - code: comment regions blanked, string literals kept
//   - scrubbed: comment regions and string/char literals blanked
//
// Handled regions: line comments, nested block comments, double-quoted
// strings with backslash escapes, triple-quoted raw strings, and char
// literals. String templates are not interpreted; a lexical engine does
// not need them and treating the whole literal as opaque errs on the
// side of fewer false positives.
func scrub(src string) (code, scrubbed string) {
	const (
		modeCode = iota
		modeLine
		modeBlock
		modeString
		modeRawString
		modeChar
	)

	cb := []byte(src)
	sb := []byte(src)
	mode := modeCode
	depth := 0
	n := len(src)

	blankComment := func(i int) {
		cb[i] = ' '
		sb[i] = ' '
	}
	blankLiteral := func(i int) {
		sb[i] = ' '
	}

	for i := 0; i < n; i++ {
		c := src[i]
		switch mode {
		case modeCode:
			switch {
			case c == '/' && i+1 < n && src[i+1] == '/':
				mode = modeLine
				blankComment(i)
			case c == '/' && i+1 < n && src[i+1] == '*':
				mode = modeBlock
				depth = 1
				blankComment(i)
				blankComment(i + 1)
				i++
			case c == '"' && i+2 < n && src[i+1] == '"' && src[i+2] == '"':
				mode = modeRawString
				blankLiteral(i)
				blankLiteral(i + 1)
				blankLiteral(i + 2)
				i += 2
			case c == '"':
				mode = modeString
				blankLiteral(i)
			case c == '\'':
				mode = modeChar
				blankLiteral(i)
			}
		case modeLine:
			if c == '\n' {
				mode = modeCode
			} else {
				blankComment(i)
			}
		case modeBlock:
			switch {
			case c == '/' && i+1 < n && src[i+1] == '*':
				depth++
				blankComment(i)
				blankComment(i + 1)
				i++
			case c == '*' && i+1 < n && src[i+1] == '/':
				depth--
				blankComment(i)
				blankComment(i + 1)
				i++
				if depth == 0 {
					mode = modeCode
				}
			case c != '\n':
				blankComment(i)
			}
		case modeString:
			switch {
			case c == '\\' && i+1 < n:
				blankLiteral(i)
				if src[i+1] != '\n' {
					blankLiteral(i + 1)
				}
				i++
			case c == '"':
				blankLiteral(i)
				mode = modeCode
			case c == '\n':
				// Unterminated literal; recover at end of line.
				mode = modeCode
			default:
				blankLiteral(i)
			}
		case modeRawString:
			if c == '"' && i+2 < n && src[i+1] == '"' && src[i+2] == '"' {
				blankLiteral(i)
				blankLiteral(i + 1)
				blankLiteral(i + 2)
				i += 2
				mode = modeCode
			} else if c != '\n' {
				blankLiteral(i)
			}
		case modeChar:
			switch {
			case c == '\\' && i+1 < n:
				blankLiteral(i)
				if src[i+1] != '\n' {
					blankLiteral(i + 1)
				}
				i++
			case c == '\'':
				blankLiteral(i)
				mode = modeCode
			case c == '\n':
				mode = modeCode
			default:
				blankLiteral(i)
			}
		}
	}

	return string(cb), string(sb)
}
