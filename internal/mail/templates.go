// Package mail holds the outbound email templates and their HTML rendering.
// Templates are a lookup table keyed by locale code, so adding a locale is a
// pure data change.
package mail

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Template is one localized visitor email: a subject and the body as
// plain-text lines rendered to HTML by RenderBody.
type Template struct {
	Subject string
	Body    []string
}

var templates = map[string]Template{
	"es": {
		Subject: "Mi CV, como prometí — Ismael Morejón",
		Body: []string{
			"Hola,",
			"",
			"Gracias por dejar tu email en mi web.",
			"No lo hace cualquiera, y eso me dice algo.",
			"",
			"Te prometí mi CV con contexto, así que aquí va.",
			"",
			"Pero antes de que lo abras, déjame ahorrarte tiempo.",
			"",
			"Si buscas a alguien que ejecute tickets sin pensar, no soy yo.",
			"Si buscas a alguien que lleve 10 años haciendo lo mismo, tampoco.",
			"",
			"Pero si buscas a alguien que:",
			"→ Piensa en el producto, no solo en el código",
			"→ Deja las cosas mejor de lo que las encuentra",
			"→ Aprende rápido y ejecuta más rápido",
			"",
			"Entonces merece la pena seguir hablando.",
			"",
			"¿Tienes 15 minutos esta semana para una llamada rápida?",
			"Me adapto a tu horario.",
			"",
			"Un saludo,",
			"Ismael",
		},
	},
	"en": {
		Subject: "My CV, as promised — Ismael Morejón",
		Body: []string{
			"Hi,",
			"",
			"Thanks for leaving your email on my website.",
			"Not everyone does that, and it tells me something.",
			"",
			"I promised you my CV with context, so here it is.",
			"",
			"But before you open it, let me save you some time.",
			"",
			"If you're looking for someone who just executes tickets without thinking, I'm not your guy.",
			"If you're looking for someone with 10 years of doing the same thing, also not me.",
			"",
			"But if you're looking for someone who:",
			"→ Thinks about the product, not just the code",
			"→ Leaves things better than they found them",
			"→ Learns fast and executes faster",
			"",
			"Then it's worth talking.",
			"",
			"Got 15 minutes this week for a quick call?",
			"I'll work around your schedule.",
			"",
			"Cheers,",
			"Ismael",
		},
	},
	"ca": {
		Subject: "El meu CV, com vaig prometre — Ismael Morejón",
		Body: []string{
			"Hola,",
			"",
			"Gràcies per deixar el teu email a la meva web.",
			"No ho fa qualsevol, i això em diu alguna cosa.",
			"",
			"Et vaig prometre el meu CV amb context, així que aquí el tens.",
			"",
			"Però abans que l'obris, deixa'm estalviar-te temps.",
			"",
			"Si busques algú que executi tickets sense pensar, no sóc jo.",
			"Si busques algú que porti 10 anys fent el mateix, tampoc.",
			"",
			"Però si busques algú que:",
			"→ Pensa en el producte, no només en el codi",
			"→ Deixa les coses millor del que les troba",
			"→ Aprèn ràpid i executa més ràpid",
			"",
			"Llavors val la pena seguir parlant.",
			"",
			"Tens 15 minuts aquesta setmana per a una trucada ràpida?",
			"M'adapto al teu horari.",
			"",
			"Una salutació,",
			"Ismael",
		},
	},
	"gl": {
		Subject: "O meu CV, como prometín — Ismael Morejón",
		Body: []string{
			"Ola,",
			"",
			"Grazas por deixar o teu email na miña web.",
			"Non o fai calquera, e iso dime algo.",
			"",
			"Prometínche o meu CV con contexto, así que aquí vai.",
			"",
			"Pero antes de que o abras, déixame aforrarte tempo.",
			"",
			"Se buscas a alguén que execute tickets sen pensar, non son eu.",
			"Se buscas a alguén que leve 10 anos facendo o mesmo, tampouco.",
			"",
			"Pero se buscas a alguén que:",
			"→ Pensa no produto, non só no código",
			"→ Deixa as cousas mellor do que as atopa",
			"→ Aprende rápido e executa máis rápido",
			"",
			"Entón paga a pena seguir falando.",
			"",
			"Tes 15 minutos esta semana para unha chamada rápida?",
			"Adáptome ao teu horario.",
			"",
			"Un saúdo,",
			"Ismael",
		},
	},
}

// TemplateFor returns the visitor email template for the given locale.
func TemplateFor(lang string) (Template, bool) {
	t, ok := templates[lang]
	return t, ok
}

// RenderBody converts template body lines to the HTML email wrapper.
// Blank lines become <br>, lines starting with "→" get a highlighted border.
func RenderBody(body []string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">`)
	for _, line := range body {
		switch {
		case line == "":
			b.WriteString("<br>")
		case strings.HasPrefix(line, "→"):
			b.WriteString(`<p style="margin: 4px 0; padding-left: 8px; border-left: 2px solid #7dcfff;">` + html.EscapeString(line) + "</p>")
		default:
			b.WriteString(`<p style="margin: 8px 0;">` + html.EscapeString(line) + "</p>")
		}
	}
	b.WriteString(`<hr style="border: none; border-top: 1px solid #eee; margin: 24px 0;">
  <p style="font-size: 12px; color: #888;">
    <a href="https://ismobla.dev" style="color: #7dcfff;">ismobla.dev</a> ·
    <a href="https://linkedin.com/in/ismobla" style="color: #7dcfff;">LinkedIn</a> ·
    <a href="https://github.com/xSharkhy" style="color: #7dcfff;">GitHub</a>
  </p>
</body>
</html>`)
	return b.String()
}

// NotificationSubject is the subject line of the operator notification.
func NotificationSubject(email string) string {
	return "🔔 Nuevo contacto: " + email
}

// RenderNotification builds the fixed-format operator notification body
// summarizing a new lead.
func RenderNotification(email, lang, message string, createdAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(email))
	fmt.Fprintf(&b, "<p><strong>Idioma:</strong> %s</p>", html.EscapeString(strings.ToUpper(lang)))
	if message != "" {
		fmt.Fprintf(&b, "<p><strong>Mensaje:</strong> %s</p>", html.EscapeString(message))
	}
	fmt.Fprintf(&b, "<p><small>%s</small></p>", createdAt.UTC().Format(time.RFC3339))
	return b.String()
}
