// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package article derives the per-article values of a converted document:
// its slug, title and excerpt, and the standalone HTML page it is
// published as.
package article

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns a filename into a lowercase ASCII identifier in the manner
// of a strict slugify: characters are first transliterated through
// charMap ("&" -> "and", "ß" -> "ss", "П" -> "P"), other accented letters
// lose their marks, hyphens count as spaces, everything outside
// [A-Za-z0-9] and whitespace is dropped, and whitespace runs become a
// single hyphen. A name with nothing transliterable (e.g. "日本語") gives
// "". Slugify is idempotent.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(name) {
		if sub, ok := charMap[r]; ok {
			b.WriteString(sub)
			continue
		}
		switch {
		case r == '-' || unicode.IsSpace(r):
			b.WriteByte(' ')
		case r < unicode.MaxASCII:
			b.WriteRune(r)
		default:
			b.WriteString(foldMarks(r))
		}
	}

	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}, b.String())
	return strings.ToLower(strings.Join(strings.Fields(kept), "-"))
}

// foldMarks strips combining marks from letters charMap does not cover.
func foldMarks(r rune) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(fold, string(r))
	if err != nil {
		return ""
	}
	return s
}

// charMap is the transliteration table of the slugify package the site
// tooling has always used, restricted to symbols, Latin, Greek and
// Cyrillic.
var charMap = map[rune]string{
	'$': "dollar", '%': "percent", '&': "and", '<': "less", '>': "greater", '|': "or",
	'¢': "cent", '£': "pound", '¤': "currency", '¥': "yen", '©': "(c)", 'ª': "a", '®': "(r)", 'º': "o",
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Ä': "A", 'Å': "A", 'Æ': "AE", 'Ç': "C",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E", 'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I",
	'Ð': "D", 'Ñ': "N", 'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ö': "O", 'Ø': "O",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ü': "U", 'Ý': "Y", 'Þ': "TH", 'ß': "ss",
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a", 'æ': "ae", 'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e", 'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ð': "d", 'ñ': "n", 'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u", 'ý': "y", 'þ': "th", 'ÿ': "y",
	'Ā': "A", 'ā': "a", 'Ă': "A", 'ă': "a", 'Ą': "A", 'ą': "a", 'Ć': "C", 'ć': "c",
	'Č': "C", 'č': "c", 'Ď': "D", 'ď': "d", 'Đ': "DJ", 'đ': "dj", 'Ē': "E", 'ē': "e",
	'Ė': "E", 'ė': "e", 'Ę': "e", 'ę': "e", 'Ě': "E", 'ě': "e", 'Ğ': "G", 'ğ': "g",
	'Ģ': "G", 'ģ': "g", 'Ĩ': "I", 'ĩ': "i", 'Ī': "i", 'ī': "i", 'Į': "I", 'į': "i",
	'İ': "I", 'ı': "i", 'Ķ': "k", 'ķ': "k", 'Ļ': "L", 'ļ': "l", 'Ľ': "L", 'ľ': "l",
	'Ł': "L", 'ł': "l", 'Ń': "N", 'ń': "n", 'Ņ': "N", 'ņ': "n", 'Ň': "N", 'ň': "n",
	'Ō': "O", 'ō': "o", 'Ő': "O", 'ő': "o", 'Œ': "OE", 'œ': "oe", 'Ŕ': "R", 'ŕ': "r",
	'Ř': "R", 'ř': "r", 'Ś': "S", 'ś': "s", 'Ş': "S", 'ş': "s", 'Š': "S", 'š': "s",
	'Ţ': "T", 'ţ': "t", 'Ť': "T", 'ť': "t", 'Ũ': "U", 'ũ': "u", 'Ū': "u", 'ū': "u",
	'Ů': "U", 'ů': "u", 'Ű': "U", 'ű': "u", 'Ų': "U", 'ų': "u", 'Ŵ': "W", 'ŵ': "w",
	'Ŷ': "Y", 'ŷ': "y", 'Ÿ': "Y", 'Ź': "Z", 'ź': "z", 'Ż': "Z", 'ż': "z", 'Ž': "Z", 'ž': "z",
	'Ə': "E", 'ə': "e", 'ƒ': "f", 'Ơ': "O", 'ơ': "o", 'Ư': "U", 'ư': "u",
	'ǈ': "LJ", 'ǉ': "lj", 'ǋ': "NJ", 'ǌ': "nj", 'Ș': "S", 'ș': "s", 'Ț': "T", 'ț': "t",
	'ẞ': "SS",

	'Ά': "A", 'Έ': "E", 'Ή': "H", 'Ί': "I", 'Ό': "O", 'Ύ': "Y", 'Ώ': "W", 'ΐ': "i",
	'Α': "A", 'Β': "B", 'Γ': "G", 'Δ': "D", 'Ε': "E", 'Ζ': "Z", 'Η': "H", 'Θ': "8",
	'Ι': "I", 'Κ': "K", 'Λ': "L", 'Μ': "M", 'Ν': "N", 'Ξ': "3", 'Ο': "O", 'Π': "P",
	'Ρ': "R", 'Σ': "S", 'Τ': "T", 'Υ': "Y", 'Φ': "F", 'Χ': "X", 'Ψ': "PS", 'Ω': "W",
	'Ϊ': "I", 'Ϋ': "Y", 'ά': "a", 'έ': "e", 'ή': "h", 'ί': "i", 'ΰ': "y",
	'α': "a", 'β': "b", 'γ': "g", 'δ': "d", 'ε': "e", 'ζ': "z", 'η': "h", 'θ': "8",
	'ι': "i", 'κ': "k", 'λ': "l", 'μ': "m", 'ν': "n", 'ξ': "3", 'ο': "o", 'π': "p",
	'ρ': "r", 'ς': "s", 'σ': "s", 'τ': "t", 'υ': "y", 'φ': "f", 'χ': "x", 'ψ': "ps",
	'ω': "w", 'ϊ': "i", 'ϋ': "y", 'ό': "o", 'ύ': "y", 'ώ': "w",

	'Ё': "Yo", 'Ђ': "DJ", 'Є': "Ye", 'І': "I", 'Ї': "Yi", 'Ј': "J", 'Љ': "LJ", 'Њ': "NJ",
	'Ћ': "C", 'Џ': "DZ", 'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E",
	'Ж': "Zh", 'З': "Z", 'И': "I", 'Й': "J", 'К': "K", 'Л': "L", 'М': "M", 'Н': "N",
	'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U", 'Ф': "F", 'Х': "H",
	'Ц': "C", 'Ч': "Ch", 'Ш': "Sh", 'Щ': "Sh", 'Ъ': "U", 'Ы': "Y", 'Ь': "", 'Э': "E",
	'Ю': "Yu", 'Я': "Ya", 'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h",
	'ц': "c", 'ч': "ch", 'ш': "sh", 'щ': "sh", 'ъ': "u", 'ы': "y", 'ь': "", 'э': "e",
	'ю': "yu", 'я': "ya", 'ё': "yo", 'ђ': "dj", 'є': "ye", 'і': "i", 'ї': "yi", 'ј': "j",
	'љ': "lj", 'њ': "nj", 'ћ': "c", 'ѝ': "u", 'џ': "dz", 'Ґ': "G", 'ґ': "g",
	'Ғ': "GH", 'ғ': "gh", 'Қ': "KH", 'қ': "kh", 'Ң': "NG", 'ң': "ng", 'Ү': "UE", 'ү': "ue",
	'Ұ': "U", 'ұ': "u", 'Һ': "H", 'һ': "h", 'Ә': "AE", 'ә': "ae", 'Ө': "OE", 'ө': "oe",

	'€': "euro", '₹': "indian rupee", '₽': "russian ruble", '฿': "baht",
	'∂': "d", '∆': "delta", '∑': "sum", '∞': "infinity", '♥': "love", '元': "yuan", '円': "yen",
}
