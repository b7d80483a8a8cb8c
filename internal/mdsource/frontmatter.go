package mdsource

import "bytes"

// splitFrontMatter pulls the leading "---\n...\n---\n" block (if any) out
// of content and returns its raw YAML text plus the remaining body. The
// front matter lines are replaced by blank lines rather than removed
// outright, so every later element's line number still matches its
// position in the original source (source positions are used in parse
// error messages, spec.md §7).
func splitFrontMatter(content []byte) (string, []byte) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return "", content
	}

	lines := bytes.Split(content, []byte("\n"))
	for i := 1; i < len(lines); i++ {
		trimmed := bytes.TrimRight(lines[i], "\r")
		if bytes.Equal(trimmed, []byte("---")) || bytes.Equal(trimmed, []byte("...")) {
			raw := bytes.Join(lines[1:i], []byte("\n"))
			body := append(bytes.Repeat([]byte("\n"), i+1), bytes.Join(lines[i+1:], []byte("\n"))...)
			return string(raw), body
		}
	}
	return "", content
}
