package i18n

var deCatalog = map[string]string{
	// ─── Subject labels ──────────────────────────────────────────────────
	"New attachment":  "Neuer Anhang",
	"New comment":     "Neuer Kommentar",
	"Comment updated": "Kommentar aktualisiert",
	"New subtask":     "Neue Teilaufgabe",
	"Subtask updated": "Teilaufgabe aktualisiert",
	"New task":        "Neue Aufgabe",
	"Task updated":    "Aufgabe aktualisiert",
	"Task closed":     "Aufgabe geschlossen",
	"Task opened":     "Aufgabe geöffnet",
	"Column change":   "Spaltenwechsel",
	"Position change": "Positionswechsel",
	"Assignee change": "Zuständigkeit geändert",
	"Due tasks":       "Fällige Aufgaben",
	"Notification":    "Benachrichtigung",

	// ─── Mail bodies ─────────────────────────────────────────────────────
	"View this task":                "Diese Aufgabe anzeigen",
	"The following tasks are due:":  "Die folgenden Aufgaben sind fällig:",
	"Open the board":                "Board öffnen",
	"This is a test notification.":  "Dies ist eine Testbenachrichtigung.",
	"Your mail settings work fine.": "Ihre E-Mail-Einstellungen funktionieren.",
}
