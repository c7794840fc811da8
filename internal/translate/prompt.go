package translate

import (
	"fmt"
	"strings"

	"github.com/ranilearn/rani/internal/i18n"
)

const systemPrompt = `You translate the interface of Rani, a mobile app that teaches first-time smartphone users in rural India how to make digital payments and use government services. Write short, warm, everyday language a new learner understands. Keep brand and product names such as UPI, Paytm, Google Pay, BHIM and Rani unchanged.`

var languageNames = map[i18n.Language]string{
	i18n.EN: "English",
	i18n.HI: "Hindi (Devanagari script)",
	i18n.BN: "Bengali (Bengali script)",
}

func buildPrompt(lang i18n.Language, source map[string]string, keys []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target language: %s\n\n", languageNames[lang])
	b.WriteString("Strings to translate (key: English text):\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, source[k])
	}
	b.WriteString(`
Instructions:
1. Return one entry for every key listed above, using the key unchanged.
2. Keep placeholders, numbers and the rupee sign (₹) as they are.
3. Match the length of the English text; these strings appear on buttons and headers.
`)
	return b.String()
}
