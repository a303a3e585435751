package telegram

const (
	msgWelcome = `👋 <b>Welcome to KeyCards!</b>

Learn programming-language keywords with AI-generated flashcards.

Log in with /login, then try /practice or /quiz.
Use /help to see every command.`

	msgHelp = `<b>Commands</b>

/login email password — connect your KeyCards account
/register name email password — create an account
/logout — disconnect and discard active sessions
/languages — languages available for study
/cards language — browse flashcards
/generate language — generate flashcards for a language
/practice [language] [count] — untimed practice session
/quiz [language] [count] — timed quiz
/progress — your study progress
/settings — defaults and daily reminders`

	msgUnknownCommand = "Unknown command. Use /help to see what I can do."
	msgInternalError  = "Something went wrong. Please try again."
	msgNotLoggedIn    = "You are not logged in. Use /login email password first."

	msgLoginUsage    = "Usage: /login email password"
	msgRegisterUsage = "Usage: /register name email password"
	msgLoggedOut     = "You are logged out. Your active sessions were discarded."

	msgGenerateUsage = "Usage: /generate language (e.g. /generate go)"
	msgCardsUsage    = "Usage: /cards language (e.g. /cards python)"

	msgNoPracticeSession = "No active practice session. Start one with /practice."
	msgNoQuizSession     = "No active quiz session. Start one with /quiz."
	msgNoFlashcards      = "No flashcards for this language yet. Try /generate first."
	msgSubmitFailed      = "Could not submit your session. It is still active — try again."

	msgPracticeQuit = "Practice session discarded."
	msgQuizQuit     = "Quiz session discarded."
	msgTimeUp       = "⏰ <b>Time is up!</b> Your quiz was submitted automatically.\n\n"

	msgReminder = "📚 <b>Time to study!</b>\n\nA few minutes of practice a day keeps your streak alive."
)
