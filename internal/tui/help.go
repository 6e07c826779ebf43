package tui

import (
	"github.com/RonaldoHorta159/tramite-cli/internal/docs"
)

func helpTopics() []string {
	return docs.Topics()
}

func helpBody(topic string) (string, bool) {
	return docs.Get(topic)
}
