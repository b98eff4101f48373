package fiches

import "strings"

const codeFence = "```"

// CleanContent removes every markdown code fence and trims the result.
func CleanContent(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, codeFence, ""))
}
