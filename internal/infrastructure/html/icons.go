package html

import (
	"strings"
	"unicode"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// builtinIcon icono propio para una plataforma conocida.
type builtinIcon struct {
	key string // nombre normalizado
	url string
}

// Tabla inmutable, en orden de búsqueda por subcadena.
var builtinIcons = []builtinIcon{
	{"facebook", "https://cdn.simpleicons.org/facebook"},
	{"instagram", "https://cdn.simpleicons.org/instagram"},
	{"twitter", "https://cdn.simpleicons.org/x"},
	{"x", "https://cdn.simpleicons.org/x"},
	{"linkedin", "https://cdn.simpleicons.org/linkedin"},
	{"youtube", "https://cdn.simpleicons.org/youtube"},
	{"tiktok", "https://cdn.simpleicons.org/tiktok"},
	{"pinterest", "https://cdn.simpleicons.org/pinterest"},
	{"whatsapp", "https://cdn.simpleicons.org/whatsapp"},
	{"yelp", "https://cdn.simpleicons.org/yelp"},
	{"google", "https://cdn.simpleicons.org/google"},
	{"nextdoor", "https://cdn.simpleicons.org/nextdoor"},
	{"thumbtack", "https://cdn.simpleicons.org/thumbtack"},
	{"houzz", "https://cdn.simpleicons.org/houzz"},
}

// Claves más cortas que esto solo coinciden de forma exacta ("x" no debe
// coincidir con "xing" ni con "linux").
const minSubstringKey = 4

// normalizePlatform minúsculas y solo letras/dígitos: "Google Business" → "googlebusiness".
func normalizePlatform(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IconFor busca el icono propio de una plataforma: primero coincidencia exacta
// del nombre normalizado, luego por subcadena. ok=false → enlace de texto.
func IconFor(platform string) (url string, ok bool) {
	name := normalizePlatform(platform)
	if name == "" {
		return "", false
	}
	for _, ic := range builtinIcons {
		if ic.key == name {
			return ic.url, true
		}
	}
	for _, ic := range builtinIcons {
		if len(ic.key) >= minSubstringKey && strings.Contains(name, ic.key) {
			return ic.url, true
		}
	}
	return "", false
}

// socialView enlace listo para la plantilla.
type socialView struct {
	Platform string
	URL      string
	IconURL  string // vacío → se imprime el nombre como texto
}

// socialLinks filtra por tipo y superficie y resuelve el icono:
// icono del tenant → icono propio → texto.
func socialLinks(links []entity.SocialLink, kind entity.DocumentKind, email bool) []socialView {
	var out []socialView
	for _, l := range links {
		if l.URL == "" || !l.VisibleOn(kind, email) {
			continue
		}
		v := socialView{Platform: l.Platform, URL: l.URL, IconURL: l.IconURL}
		if v.IconURL == "" {
			v.IconURL, _ = IconFor(l.Platform)
		}
		out = append(out, v)
	}
	return out
}
