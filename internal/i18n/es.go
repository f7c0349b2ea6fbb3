package i18n

var esCatalog = map[string]string{
	// ─── Subject labels ──────────────────────────────────────────────────
	"New attachment":  "Nuevo adjunto",
	"New comment":     "Nuevo comentario",
	"Comment updated": "Comentario actualizado",
	"New subtask":     "Nueva subtarea",
	"Subtask updated": "Subtarea actualizada",
	"New task":        "Nueva tarea",
	"Task updated":    "Tarea actualizada",
	"Task closed":     "Tarea cerrada",
	"Task opened":     "Tarea abierta",
	"Column change":   "Cambio de columna",
	"Position change": "Cambio de posición",
	"Assignee change": "Cambio de asignación",
	"Due tasks":       "Tareas vencidas",
	"Notification":    "Notificación",

	// ─── Mail bodies ─────────────────────────────────────────────────────
	"View this task":                "Ver esta tarea",
	"The following tasks are due:":  "Las siguientes tareas están por vencer:",
	"Open the board":                "Abrir el tablero",
	"This is a test notification.":  "Esta es una notificación de prueba.",
	"Your mail settings work fine.": "Su configuración de correo funciona correctamente.",
}
