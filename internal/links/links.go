// Package links builds the search-link replies sent for a scanned code.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"gojobot/internal/i18n"
)

// BlockSeparator joins multiple link blocks when one photo yields more
// than one barcode.
const BlockSeparator = "\n\n---\n\n"

// Build constructs the reply for a single decoded code: a Home Depot
// search link, a Google search link and, when the user has a preferred
// store configured, an annotation line naming it. The code is URL-encoded
// so punctuation inside an odd barcode payload cannot break the links.
func Build(code, store string, lang i18n.Lang) string {
	code = strings.TrimSpace(code)

	homeDepotSearch := "https://www.homedepot.com/s/" + url.PathEscape(code)

	query := url.Values{}
	query.Set("q", code+" Home Depot clearance")
	googleSearch := "https://www.google.com/search?" + query.Encode()

	storeLineEN := ""
	storeLineAM := ""
	if store != "" {
		storeLineEN = fmt.Sprintf("🏬 Preferred store: #%s\n\n", store)
		storeLineAM = fmt.Sprintf("🏬 የተመረጠው መደብር ቁጥር፡ #%s\n\n", store)
	}

	en := fmt.Sprintf(
		"🔢 *Code detected:* `%s`\n\n"+
			"🧡 *Home Depot search:*\n%s\n\n"+
			"🌍 *Google search:*\n%s\n\n"+
			"%s"+
			"👉 Use your Home Depot app or in-store scanner to check final clearance price.",
		code, homeDepotSearch, googleSearch, storeLineEN)

	am := fmt.Sprintf(
		"🔢 *የተነበበው ባርኮድ ኮድ:* `%s`\n\n"+
			"🧡 *በ Home Depot ፍለጋ:*\n%s\n\n"+
			"🌍 *በ Google ፍለጋ:*\n%s\n\n"+
			"%s"+
			"👉 የመጨረሻ ዋጋን ለማወቅ የ Home Depot መተግበሪያ ወይም በውስጥ ስካነር ይጠቀሙ።",
		code, homeDepotSearch, googleSearch, storeLineAM)

	return i18n.Format(en, am, lang)
}
