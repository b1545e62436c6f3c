// Package hebrew provides the fixed Hebrew alphabet tables used to map
// name letters to Psalm 119 stanza positions.
package hebrew

// Alphabet contains the 22 letters of the Hebrew alphabet in canonical
// order. The position of each letter is its stanza index in Psalm 119.
var Alphabet = []rune{
	'א', 'ב', 'ג', 'ד', 'ה', 'ו', 'ז', 'ח', 'ט', 'י',
	'כ', 'ל', 'מ', 'נ', 'ס', 'ע', 'פ', 'צ', 'ק', 'ר',
	'ש', 'ת',
}

// finalForms maps the five final-letter variants to their base letter.
var finalForms = map[rune]rune{
	'ך': 'כ',
	'ם': 'מ',
	'ן': 'נ',
	'ף': 'פ',
	'ץ': 'צ',
}

// letterIndex maps each base letter to its alphabet position.
var letterIndex = func() map[rune]int {
	m := make(map[rune]int, len(Alphabet))
	for i, r := range Alphabet {
		m[r] = i
	}
	return m
}()

// Normalize folds a final-letter form to its base form. Any other rune is
// returned unchanged.
func Normalize(r rune) rune {
	if base, ok := finalForms[r]; ok {
		return base
	}
	return r
}

// IndexOf returns the alphabet position of a base letter. The second
// return value reports whether r is one of the 22 base letters; final
// forms must be normalized first.
func IndexOf(r rune) (int, bool) {
	i, ok := letterIndex[r]
	return i, ok
}

// IsLetter reports whether r is a Hebrew letter this system recognizes,
// counting final forms.
func IsLetter(r rune) bool {
	_, ok := letterIndex[Normalize(r)]
	return ok
}
