package bot

// Reply-keyboard button labels. The transport renders them; inbound
// messages matching a label act as command triggers.
const (
	BtnAdd      = "➕ Add assignment"
	BtnList     = "📋 My assignments"
	BtnStats    = "📊 Statistics"
	BtnPriority = "📌 Priority of the day"
	BtnWeekPlan = "📅 Week plan"
	BtnAdvice   = "🤖 Ask the advisor"
	BtnEdit     = "✏️ Edit assignment"
	BtnDelete   = "🗑 Delete assignment"
	BtnFilter   = "🔍 Filter by subject"
)

// Keyboard returns the reply keyboard rows in display order.
func Keyboard() [][]string {
	return [][]string{
		{BtnAdd},
		{BtnList, BtnStats},
		{BtnPriority, BtnWeekPlan},
		{BtnAdvice},
		{BtnEdit, BtnDelete},
		{BtnFilter},
	}
}

// commandAliases lets console users type short commands instead of
// tapping buttons.
var commandAliases = map[string]string{
	"/add":      BtnAdd,
	"/list":     BtnList,
	"/stats":    BtnStats,
	"/priority": BtnPriority,
	"/week":     BtnWeekPlan,
	"/ask":      BtnAdvice,
	"/edit":     BtnEdit,
	"/delete":   BtnDelete,
	"/filter":   BtnFilter,
}
