package dialog

// User-visible prompts and replies. The dispatcher sends these verbatim,
// so they carry the bot's chat register rather than log style.
const (
	msgPromptSubject     = "📘 Enter the subject name:"
	msgPromptDeadline    = "📅 Enter the deadline (YYYY-MM-DD):"
	msgPromptDifficulty  = "⚙️ Difficulty (1-5):"
	msgPromptEditIndex   = "✏️ Enter the number of the assignment to edit:"
	msgPromptEditSubject = "✏️ New subject:"
	msgPromptDeleteIndex = "🗑 Enter the number of the assignment to delete:"
	msgPromptFilter      = "🔍 Enter the subject to filter by:"
	msgPromptQuestion    = "🤖 Ask your question:"

	msgErrEmptySubject   = "❌ The subject cannot be empty. Try again:"
	msgErrBadDate        = "❌ The date must look like YYYY-MM-DD. Try again:"
	msgErrPastDate       = "❌ The deadline cannot be in the past. Enter the date again:"
	msgErrBadDifficulty  = "❌ Enter a number from 1 to 5:"
	msgErrBadIndex       = "❌ Enter a valid assignment number:"
	msgErrEmptyQuestion  = "❌ The question cannot be empty. Try again:"
	msgErrEmptyFilter    = "❌ The subject cannot be empty."
	msgErrTargetVanished = "❌ That assignment no longer exists."

	msgAdded     = "✅ Assignment added."
	msgUpdated   = "✅ Assignment updated."
	msgDeleted   = "✅ Assignment deleted."
	msgCancelled = "❌ Cancelled."
	msgNoFlow    = "Nothing to cancel."

	msgStoreFailure = "⚠️ Something went wrong, the operation was not saved. Please try again."
)
