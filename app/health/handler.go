package health

import (
	"net/http"

	"github.com/kbo-registry/kbo-crud/app/web"
)

func HandlePing(w http.ResponseWriter, r *http.Request) {
	web.WriteMessage(w, http.StatusOK, "pong")
}
