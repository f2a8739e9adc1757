package handler

import (
	"fmt"

	"gojobot/internal/domain"
	"gojobot/internal/i18n"
)

// User-facing texts, bilingual English/Amharic. Kept next to the handlers
// that send them, the same way the command surface is laid out.

func startText(sess *domain.Session) string {
	storeLineEN := ""
	storeLineAM := ""
	if sess.PreferredStore != "" {
		storeLineEN = fmt.Sprintf("\n\n🏬 Current preferred store: #%s", sess.PreferredStore)
		storeLineAM = fmt.Sprintf("\n\n🏬 አሁን የተመረጠው መደብር፡ #%s", sess.PreferredStore)
	}

	en := "👋 Welcome to *GOJO Home Depot Clearance Helper Bot*!\n\n" +
		"I help you quickly check item barcodes while you hunt for clearance deals.\n\n" +
		"📸 Send me a *photo of a barcode* or\n" +
		"⌨️ *Type the barcode number* (UPC/EAN)." +
		storeLineEN + "\n\n" +
		"🗣 Language: English + Amharic (use /lang to change).\n" +
		"🏬 Use /store to set your favorite Home Depot store number."

	am := "👋 ወደ *GOJO Home Depot Clearance አጋዥ ቦት* እንኳን ደህና መጡ!\n\n" +
		"በክሊራንስ ሽያጭ ፍለጋ ጊዜ የእቃ ባርኮዶችን በፍጥነት እንዲፈትሹ እረዳዎታለሁ።\n\n" +
		"📸 *የባርኮድ ፎቶ* ይላኩ ወይም\n" +
		"⌨️ *የባርኮዱን ቁጥር* ብቻ ይጻፉ (UPC/EAN)." +
		storeLineAM + "\n\n" +
		"🗣 ቋንቋ፡ እንግሊዝኛ + አማርኛ (ለመቀየር /lang ይጠቀሙ)።\n" +
		"🏬 የሚወዱትን Home Depot መደብር ቁጥር ለማስቀመጥ /store ይጠቀሙ።"

	return i18n.Format(en, am, sess.Language)
}

func helpText(lang i18n.Lang) string {
	en := "📌 *How to use GOJO Clearance Bot*\n\n" +
		"1️⃣ Take a clear photo of the product barcode.\n" +
		"2️⃣ Send the photo here, or type the barcode digits.\n" +
		"3️⃣ I'll send you quick links to search that code on Home Depot and Google.\n\n" +
		"Commands:\n" +
		"/start – Welcome message\n" +
		"/help – This help menu\n" +
		"/store 1234 – Set your preferred store number\n" +
		"/lang en|am|bi – Change language (English, Amharic, or both)"

	am := "📌 *GOJO Clearance Bot እንዴት እንደሚጠቀሙበት*\n\n" +
		"1️⃣ የእቃውን ባርኮድ ግልጽ ፎቶ ያንሱ።\n" +
		"2️⃣ ፎቶውን ወደዚህ ይላኩ ወይም የባርኮዱን ቁጥር ይጻፉ።\n" +
		"3️⃣ ኮዱን በ Home Depot እና Google ላይ ለመፈለግ አገናኞችን እልክላችኋለሁ።\n\n" +
		"ትእዛዞች፦\n" +
		"/start – መግቢያ መልእክት\n" +
		"/help – የእርዳታ መመሪያ\n" +
		"/store 1234 – የሚወዱትን መደብር ቁጥር ለማስቀመጥ\n" +
		"/lang en|am|bi – ቋንቋ ለመቀየር (እንግሊዝኛ፣ አማርኛ ወይም ሁለቱም)"

	return i18n.Format(en, am, lang)
}

func langPromptText(current i18n.Lang) string {
	en := fmt.Sprintf("🌐 Current language mode: *%s*\n\n", current) +
		"Use one of these:\n" +
		"`/lang en` – English only\n" +
		"`/lang am` – Amharic only\n" +
		"`/lang bi` – Both English & Amharic"

	am := fmt.Sprintf("🌐 አሁን የተመረጠው ቋንቋ: *%s*\n\n", current) +
		"ከእነዚህ መካከል ይምረጡ፦\n" +
		"`/lang en` – እንግሊዝኛ ብቻ\n" +
		"`/lang am` – አማርኛ ብቻ\n" +
		"`/lang bi` – ሁለቱም በአንድ ጊዜ"

	return i18n.Format(en, am, current)
}

// langSetText confirms in both languages no matter what was chosen, so
// the user can still read the confirmation after switching away from a
// language they understand.
func langSetText(choice i18n.Lang) string {
	var en, am string
	switch choice {
	case i18n.LangEN:
		en = "✅ Language set to *English only*."
		am = "✅ ቋንቋ ወደ *እንግሊዝኛ ብቻ* ተቀይሯል።"
	case i18n.LangAM:
		en = "✅ Language set to *Amharic only*."
		am = "✅ ቋንቋ ወደ *አማርኛ ብቻ* ተቀይሯል።"
	default:
		en = "✅ Language set to *both English & Amharic*."
		am = "✅ ቋንቋ ወደ *እንግሊዝኛ እና አማርኛ* ተቀይሯል።"
	}
	return i18n.Format(en, am, i18n.LangBI)
}

func storeShowText(sess *domain.Session) string {
	var en, am string
	if sess.PreferredStore != "" {
		en = fmt.Sprintf("🏬 Your current preferred store is: *#%s*\nUse `/store 1234` to change it.", sess.PreferredStore)
		am = fmt.Sprintf("🏬 አሁን የተመረጠው መደብር፡ *#%s*\nለመቀየር `/store 1234` ይጻፉ።", sess.PreferredStore)
	} else {
		en = "🏬 You haven't set a preferred store yet. Use `/store 1234` to set one."
		am = "🏬 እስካሁን የተመረጠ መደብር አልተያዘም። ለማስቀመጥ `/store 1234` ይጻፉ።"
	}
	return i18n.Format(en, am, sess.Language)
}

func storeInvalidText(lang i18n.Lang) string {
	en := "❗ Please send only the store number. Example: `/store 1553`"
	am := "❗ የመደብሩን ቁጥር ብቻ ያስገቡ። ምሳሌ፦ `/store 1553`"
	return i18n.Format(en, am, lang)
}

func storeSetText(lang i18n.Lang, store string) string {
	en := fmt.Sprintf("✅ Preferred store set to *#%s*.", store)
	am := fmt.Sprintf("✅ የተመረጠው መደብር *#%s* ተሆኗል።", store)
	return i18n.Format(en, am, lang)
}

func promptText(lang i18n.Lang) string {
	en := "Please send a *barcode number* (just digits) or a *photo of a barcode* 😊"
	am := "እባክዎን *የባርኮድ ቁጥር* ብቻ ወይም *የባርኮድ ፎቶ* ይላኩ 😊"
	return i18n.Format(en, am, lang)
}

func noPhotoText(lang i18n.Lang) string {
	en := "I didn't find a photo 🤔 – please send a clear picture of the barcode."
	am := "ፎቶ አልተገኘም 🤔 – ግልጽ የባርኮድ ፎቶ ይላኩ።"
	return i18n.Format(en, am, lang)
}

func downloadFailedText(lang i18n.Lang) string {
	en := "Could not download the photo. Please try again."
	am := "ፎቶውን ማውረድ አልቻልንም። እባክዎን እንደገና ይሞክሩ።"
	return i18n.Format(en, am, lang)
}

func openFailedText(lang i18n.Lang, err error) string {
	en := fmt.Sprintf("Could not open the image. Error: %v", err)
	am := "ፎቶውን መክፈት አልተቻለም። እባክዎን እንደገና ይሞክሩ።"
	return i18n.Format(en, am, lang)
}

func noCodesText(lang i18n.Lang) string {
	en := "😕 I couldn't read any barcode from that picture.\n" +
		"Try again with:\n" +
		"• A closer shot of the barcode\n" +
		"• Good lighting\n" +
		"• Barcode straight (not too angled)"

	am := "😕 ከዚያ ፎቶ ማንኛውንም ባርኮድ ማንበብ አልቻልኩም።\n" +
		"እንደገና ይሞክሩ በዚህ መልኩ፦\n" +
		"• ባርኮዱን በቀርበው ፎቶ ያንሱ\n" +
		"• በጥሩ ብርሃን ውስጥ\n" +
		"• ባርኮዱ ቀጥ እንጂ እጅግ እንዳይዘነጋ"

	return i18n.Format(en, am, lang)
}

func adminOnlyText(lang i18n.Lang) string {
	en := "⛔ This command is for admins only."
	am := "⛔ ይህ ትእዛዝ ለአስተዳዳሪዎች ብቻ ነው።"
	return i18n.Format(en, am, lang)
}

func statsText(lang i18n.Lang, total int64) string {
	en := fmt.Sprintf("📊 Total barcodes scanned since last restart: *%d*", total)
	am := fmt.Sprintf("📊 ከመጨረሻው መጀመር ጀምሮ የተሸመሩ ባርኮዶች ጠቅላላ ብዛት፦ *%d*", total)
	return i18n.Format(en, am, lang)
}
