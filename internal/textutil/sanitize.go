// Package textutil provides filename sanitization for track output names.
package textutil

import "strings"

// separatorReplacer turns path separators into hyphens so a title never
// escapes its output directory.
var separatorReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
)

// illegalReplacer removes characters that common filesystems reject or
// that shells mangle.
var illegalReplacer = strings.NewReplacer(
	"\"", "",
	"*", "",
	":", "",
	"<", "",
	">", "",
	"?", "",
	"|", "",
	"'", "",
	"^", "",
	"`", "",
	"~", "",
	"#", "",
	"%", "",
	"&", "",
	"{", "",
	"}", "",
)

// SanitizeFileName makes a string safe to use as a file name on common
// filesystems: path separators become hyphens, illegal characters are
// removed, interior whitespace collapses to single spaces, and leading or
// trailing whitespace and dots are trimmed. The function is idempotent.
func SanitizeFileName(name string) string {
	name = separatorReplacer.Replace(name)
	name = illegalReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return strings.Trim(name, " .")
}
