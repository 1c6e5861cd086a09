package emoji

// replacements maps common emoji to bracketed labels for ModeReplace.
// Keys are the leading code point of the grapheme cluster, so presentation
// selectors and skin-tone modifiers do not defeat the lookup.
var replacements = map[rune]string{
	// Status
	'✅': "[Check]",
	'✔': "[Check]",
	'☑': "[Check]",
	'❌': "[Cross]",
	'✖': "[Cross]",
	'⚠': "[Warning]",
	'ℹ': "[Info]",
	'❗': "[Important]",
	'❓': "[Question]",
	'🛑': "[Stop]",
	'🚧': "[WIP]",
	'⛔': "[Blocked]",
	'🔥': "[Hot]",
	'✨': "[New]",
	'⭐': "[Star]",
	'🐛': "[Bug]",
	'🔒': "[Locked]",
	'🔓': "[Unlocked]",

	// Actions
	'🚀': "[Rocket]",
	'⏱': "[Timer]",
	'⏰': "[Alarm]",
	'📊': "[Chart]",
	'📈': "[Increase]",
	'📉': "[Decrease]",
	'🔍': "[Search]",
	'🔧': "[Fix]",
	'🛠': "[Tools]",
	'🔄': "[Refresh]",
	'⚙': "[Settings]",

	// Objects
	'💰': "[Money]",
	'💡': "[Idea]",
	'🎯': "[Target]",
	'🎁': "[Gift]",
	'🏆': "[Trophy]",
	'📧': "[Email]",
	'📞': "[Phone]",
	'📅': "[Calendar]",
	'📝': "[Note]",
	'📌': "[Pin]",
	'🔗': "[Link]",
	'📦': "[Package]",
	'📁': "[Folder]",
	'📄': "[Document]",
	'💻': "[Computer]",

	// Arrows
	'➡': "[Right]",
	'⬅': "[Left]",
	'⬆': "[Up]",
	'⬇': "[Down]",
	'↗': "[Up-Right]",
	'↘': "[Down-Right]",

	// Emotions
	'🎉': "[Party]",
	'👍': "[Thumbs Up]",
	'👎': "[Thumbs Down]",
	'👋': "[Wave]",
	'😀': "[Smile]",
	'😊': "[Smile]",
	'😂': "[Laugh]",
	'😢': "[Sad]",
	'❤': "[Heart]",
	'💪': "[Strong]",
	'👌': "[OK]",
	'🙏': "[Thanks]",
}
