package linear_regression

import (
	"database/sql"
	"fmt"
	"time"
)

// DataService сервис для получения данных из OLAP-куба
type DataService struct {
	db *sql.DB
}

// NewDataService создает новый сервис для работы с данными
func NewDataService(db *sql.DB) *DataService {
	return &DataService{
		db: db,
	}
}

// GetPlayerProfitSeries получает серии накопленной прибыли по игрокам
// за указанный период. X - порядковый номер игры игрока, Y - накопленная прибыль.
func (s *DataService) GetPlayerProfitSeries(daysBack int) (map[string][]DataPoint, error) {
	query := `
	SELECT
		rf.player_id,
		rf.profit,
		rf.finished_at
	FROM
		figgie_analytics.result_facts rf
	WHERE
		rf.finished_at >= DATE_SUB(NOW(), INTERVAL ? DAY)
	ORDER BY
		rf.player_id, rf.finished_at;`

	rows, err := s.db.Query(query, daysBack)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выполнении запроса к OLAP: %w", err)
	}
	defer rows.Close()

	series := make(map[string][]DataPoint)
	cumulative := make(map[string]float64)

	for rows.Next() {
		var playerID string
		var profit int
		var finishedAt time.Time

		if err := rows.Scan(&playerID, &profit, &finishedAt); err != nil {
			return nil, fmt.Errorf("ошибка при чтении данных: %w", err)
		}

		// Накапливаем прибыль и нумеруем игры игрока с единицы
		cumulative[playerID] += float64(profit)

		series[playerID] = append(series[playerID], DataPoint{
			X:    float64(len(series[playerID]) + 1),
			Y:    cumulative[playerID],
			Date: finishedAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по результатам: %w", err)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("не найдены результаты игр за последние %d дней", daysBack)
	}

	return series, nil
}
