// database/db.go
package database

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

// InitDB инициализирует соединение с базой данных
// Подключение производится в main.go (websocket.InitDB), здесь только проверка
func InitDB() {
	if DB == nil {
		log.Println("⚠️ Предупреждение: переменная DB еще не инициализирована")
	}
}
