package filter

// techKeywords marks a title as technical when any of them appears as a
// case-insensitive substring. Loose on purpose: "digit" also catches
// "digital", "tech" catches "technician".
var techKeywords = []string{
	"software",
	"developer",
	"engineer",
	"data",
	"security",
	"it officer",
	"database",
	"network",
	"system",
	"programming",
	"analyst",
	"web",
	"devops",
	"cloud",
	"information technology",
	"programmer",
	"information security",
	"technology",
	"ict",
	"tech",
	"digit",
}

// broadCategories are functional areas dominated by non-technical
// postings; records under them must pass the technical-title check.
var broadCategories = []string{
	"banking",
	"finance",
}
