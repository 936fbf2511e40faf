package emoji

import "sync/atomic"

// Icon identifies a glyph with an ASCII fallback
type Icon int

const (
	Unknown Icon = iota
	Terminal
	Builder
	Agents
	Shield
	Chart
	Eye
	Mic
	Database
	Cpu
	Error
	Warning
	Info
	Success
	Rocket
	Brain
	Key
	Link
	Spark
)

// iconMap holds [emoji, fallback] per icon
var iconMap = map[Icon][2]string{
	Terminal: {"🖥️", "[TRM]"},
	Builder:  {"🧱", "[BLD]"},
	Agents:   {"🤖", "[AGT]"},
	Shield:   {"🛡️", "[SEC]"},
	Chart:    {"📊", "[DAT]"},
	Eye:      {"👁️", "[VIS]"},
	Mic:      {"🎙️", "[VOX]"},
	Database: {"🗄️", "[MEM]"},
	Cpu:      {"🧮", "[CPU]"},
	Error:    {"❌", "[ERR]"},
	Warning:  {"⚠️", "[WRN]"},
	Info:     {"ℹ️", "[INF]"},
	Success:  {"✅", "[OK]"},
	Rocket:   {"🚀", "[RUN]"},
	Brain:    {"🧠", "[AI]"},
	Key:      {"🔑", "[KEY]"},
	Link:     {"🔗", "[LNK]"},
	Spark:    {"✨", "[*]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// String returns the emoji or its fallback based on the no-emoji setting
func (i Icon) String() string {
	mapping, exists := iconMap[i]
	if !exists {
		return "[?]"
	}
	if emojiDisabled.Load() {
		return mapping[1]
	}
	return mapping[0]
}

// Fallback returns the ASCII form regardless of the setting
func (i Icon) Fallback() string {
	if mapping, exists := iconMap[i]; exists {
		return mapping[1]
	}
	return "[?]"
}
