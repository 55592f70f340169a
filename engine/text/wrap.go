package text

import "strings"

// Wrap breaks s into lines no wider than maxWidth at the given horizontal
// scale. Existing newlines are kept; a single word wider than maxWidth gets
// a line of its own.
func Wrap(f *Font, s string, maxWidth, scaleX float32) string {
	if s == "" || maxWidth <= 0 {
		return s
	}
	width := func(str string) float32 {
		w, _ := f.MeasureScaled(str, scaleX, 1)
		return w
	}
	spaceWidth := width(" ")

	var wrapped []string
	for _, raw := range strings.Split(s, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}

		current := words[0]
		currentWidth := width(current)
		for _, word := range words[1:] {
			wordWidth := width(word)
			if currentWidth+spaceWidth+wordWidth > maxWidth {
				wrapped = append(wrapped, current)
				current = word
				currentWidth = wordWidth
				continue
			}
			current += " " + word
			currentWidth += spaceWidth + wordWidth
		}
		wrapped = append(wrapped, current)
	}
	return strings.Join(wrapped, "\n")
}
