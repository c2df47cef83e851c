package email

const (
	subjectConfirmationFmt = "✅ Confirmación de Reunión - ErickAds.ai - %s"
	subjectQualifiedFmt    = "🎯 CALIFICADO - %s %s - %s"
	subjectNotQualifiedFmt = "⚠️ NO CALIFICADO - %s %s - %s"
	subjectReminderFmt     = "⏰ Recordatorio de Reunión - ErickAds.ai - %s"
)
