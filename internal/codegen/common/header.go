package common

// FileHeader returns the "generated, do not edit" banner for a generated file,
// using the comment prefix of the target language.
// The banner carries no version or timestamp so output stays byte-identical
// for identical input.
func FileHeader(comment, lang string) string {
	return comment + " Code generated by s2gen (" + lang + "). DO NOT EDIT.\n"
}
