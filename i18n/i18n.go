package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"Test (Space)": {
		"pt": "Testar (Espaço)",
		"es": "Probar (Espacio)",
		"ru": "Тест (Пробел)",
	},
	"Quit": {
		"pt": "Sair",
		"es": "Salir",
		"ru": "Выход",
	},
	"Ready": {
		"pt": "Pronto",
		"es": "Listo",
		"ru": "Готово",
	},
	"Countdown 3-2-1 before test": {
		"pt": "Contagem 3-2-1 antes do teste",
		"es": "Cuenta 3-2-1 antes de la prueba",
		"ru": "Отсчёт 3-2-1 перед тестом",
	},
	"Beep on each count": {
		"pt": "Bipe a cada número",
		"es": "Pitido en cada número",
		"ru": "Сигнал на каждом числе",
	},
	"Repeat test": {
		"pt": "Repetir teste",
		"es": "Repetir prueba",
		"ru": "Повторять тест",
	},
	"Audio backend not found": {
		"pt": "Backend de áudio não encontrado",
		"es": "Backend de audio no encontrado",
		"ru": "Аудиобэкенд не найден",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("AVSYNC_LANG")); forcedLang != "" {
		log.Printf("AVSYNC_LANG is set to: '%s'", forcedLang)
		lang = forcedLang
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		locale := userLocales[0]
		log.Printf("Detected user locale: %s", locale)
		if strings.HasPrefix(locale, "pt") {
			lang = "pt"
		} else if strings.HasPrefix(locale, "es") {
			lang = "es"
		} else if strings.HasPrefix(locale, "ru") {
			lang = "ru"
		} else {
			lang = "en"
		}
	} else {
		log.Println("No user locale detected, defaulting to english")
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

func GetLang() string {
	return lang
}
