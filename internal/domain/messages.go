package domain

import "math/rand"

// SuccessMessages are sent when a submission was found for today.
var SuccessMessages = []string{
	"✅ Beast mode active! You've submitted today. Keep the streak alive! 🔥",
	"🧠 Brains > excuses. You're winning this grind! 💪",
	"📈 Daily effort = future success. Keep going! 🚀",
	"🚀 Streak is intact, captain. Onwards to greatness! ⭐",
	"🔥 Submission detected. Consistency is your superpower! 💯",
	"👊 You're in the 1% who showed up today. Respect! 🏆",
	"🎯 Another day, another problem solved. You're unstoppable! 🌟",
	"💎 Coding diamond in the making. Today's effort counts! ✨",
}

// WarningMessages are sent when no submission was found for today.
var WarningMessages = []string{
	"⚠️ Hey! You haven't submitted on LeetCode today. Clock's ticking! ⏰🔥",
	"🚨 Streak alert! Your coding streak needs attention. Time to code! 💻",
	"⏰ Day's almost over and no submissions yet. Don't break the chain! 🔗",
	"🎯 Missing today's target! Quick, solve something before midnight! 🌙",
}

// RandomMessage picks one message from the list.
func RandomMessage(list []string) string {
	return list[rand.Intn(len(list))]
}
