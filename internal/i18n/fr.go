package i18n

var frCatalog = map[string]string{
	// ─── Subject labels ──────────────────────────────────────────────────
	"New attachment":  "Nouvelle pièce jointe",
	"New comment":     "Nouveau commentaire",
	"Comment updated": "Commentaire mis à jour",
	"New subtask":     "Nouvelle sous-tâche",
	"Subtask updated": "Sous-tâche mise à jour",
	"New task":        "Nouvelle tâche",
	"Task updated":    "Tâche mise à jour",
	"Task closed":     "Tâche fermée",
	"Task opened":     "Tâche ouverte",
	"Column change":   "Changement de colonne",
	"Position change": "Changement de position",
	"Assignee change": "Changement d'assigné",
	"Due tasks":       "Tâches expirées",
	"Notification":    "Notification",

	// ─── Mail bodies ─────────────────────────────────────────────────────
	"View this task":                "Voir cette tâche",
	"The following tasks are due:":  "Les tâches suivantes arrivent à échéance :",
	"Open the board":                "Ouvrir le tableau",
	"This is a test notification.":  "Ceci est une notification de test.",
	"Your mail settings work fine.": "Vos réglages de messagerie fonctionnent correctement.",
}
