// Package study holds the presentational study aids shown around the chat:
// motivational lines, the daily quote, study tips, course units and frequent
// questions. No logic here, only curated strings.
package study

import (
	"math/rand"
	"time"
)

// Unit is one course unit offered in the quick navigation.
type Unit struct {
	Code  string
	Title string
}

// Units lists the course in order.
var Units = []Unit{
	{"Unidad 1", "Teoría de la Integración Regional"},
	{"Unidad 2", "Procesos de Integración en Europa"},
	{"Unidad 3", "Instituciones de la Unión Europea"},
	{"Unidad 4", "Integración Europea Actual"},
	{"Unidad 5", "Integración en América"},
}

// FrequentQuestions are the one-click starter prompts.
var FrequentQuestions = []string{
	"¿Qué es la integración regional?",
	"¿Cuáles son las etapas de integración económica?",
	"¿Qué es la Unión Europea?",
	"¿Cuáles son los objetivos del TLCAN?",
	"¿Qué es el Mercosur?",
	"Diferencias entre zona de libre comercio y unión aduanera",
	"¿Qué instituciones tiene la UE?",
	"Ejemplos de integración en América Latina",
}

var motivational = []string{
	"¡Excelente pregunta! Vamos a explorar ese tema.",
	"¡Me encanta tu curiosidad! Aquí va la respuesta.",
	"¡Muy bien! Esa es una pregunta clave del curso.",
	"¡Perfecto! Déjame explicarte ese concepto.",
	"¡Sigue así! El aprendizaje continuo es la clave.",
}

var quotes = []string{
	"La educación es el arma más poderosa para cambiar el mundo. - Nelson Mandela",
	"El aprendizaje es un tesoro que te seguirá a todas partes. - Proverbio Chino",
	"La curiosidad es la brújula que guía a los grandes pensadores. - Albert Einstein",
	"El éxito es la suma de pequeños esfuerzos realizados día tras día. - Robert Collier",
	"Quien deja de aprender, deja de crecer. - Brian Tracy",
}

var tips = []string{
	"Tip: Relaciona conceptos de diferentes unidades para mejor comprensión.",
	"Consejo: Haz mapas mentales de las instituciones de la UE.",
	"Técnica: Usa la búsqueda de fuentes para profundizar en temas.",
	"Estrategia: Repasa regularmente, no dejes todo para el día anterior.",
	"Recomendación: Toma notas mientras estudias con EcoBot.",
}

// Motivational returns a random encouragement shown before each answer.
func Motivational() string {
	return motivational[rand.Intn(len(motivational))]
}

// Quote returns the quote of the day.
func Quote() string {
	return quotes[rand.Intn(len(quotes))]
}

// Tip returns a study tip.
func Tip() string {
	return tips[rand.Intn(len(tips))]
}

// NightOwl returns an encouragement for late-night studying, and whether the
// given time falls in the night window (21:00 to 06:00).
func NightOwl(now time.Time) (string, bool) {
	h := now.Hour()
	if h >= 21 || h < 6 {
		return "Veo que estudias tarde. ¡Ánimo! El esfuerzo vale la pena.", true
	}
	return "", false
}
