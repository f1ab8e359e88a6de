package telegram

// UI texts in English. HTML parse mode.
const (
	startText = `🚀 <b>Welcome to LeetCode Streak Checker Bot!</b>

This bot helps you maintain your LeetCode coding streak by:
• Tracking your daily submissions
• Sending motivational messages
• Keeping you accountable

<b>Available Commands:</b>
• /register &lt;username&gt; - Register your LeetCode username
• /check - Check your submission status for today
• /help - Show this help message

<b>Get Started:</b>
Use <code>/register your_leetcode_username</code> to begin tracking your streak!`

	helpText = `<b>LeetCode Streak Checker Bot - Help</b>

<b>Commands:</b>
• <code>/start</code> - Welcome message and introduction
• <code>/register &lt;username&gt;</code> - Register your LeetCode username
• <code>/check</code> - Check if you've submitted today
• <code>/help</code> - Show this help message

<b>Example:</b>
<code>/register john_doe</code>

<b>Note:</b> Make sure your LeetCode profile is public for the bot to check your submissions.`

	registerUsageText = "❌ Please provide your LeetCode username.\nExample: /register johndoe"

	alreadyRegisteredFmt = "ℹ️ You're already registered with username: %s\nTo change username, contact support or re-register."

	usernameNotFoundFmt = "❌ LeetCode username '%s' not found or profile is private.\nPlease check your username and make sure your profile is public."

	registeredFmt = "✅ Successfully registered with LeetCode username: %s\n🎯 You'll now receive daily streak reminders at %s!"

	notRegisteredText = "❌ You haven't registered yet!\nUse /register <your_leetcode_username> to get started."

	checkingText = "🔍 Checking your submissions... Please wait."

	unknownCommandText = "❓ Unknown command. Use /help to see available commands."
)
