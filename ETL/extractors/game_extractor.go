package extractors

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/LilVoxy/coursework_figgie/ETL/models"
	"github.com/LilVoxy/coursework_figgie/ETL/utils"
)

// GameExtractor извлекает завершенные игры и итоги игроков из OLTP
type GameExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewGameExtractor создает новый экземпляр GameExtractor
func NewGameExtractor(db *sql.DB, logger *utils.ETLLogger) *GameExtractor {
	return &GameExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractFinishedGames извлекает игры, завершенные после lastRunTime
// Незавершенные игры (finished_at IS NULL) не попадают в выборку
func (e *GameExtractor) ExtractFinishedGames(lastRunTime time.Time, batchSize int) ([]models.GameOLTP, error) {
	query := `
	SELECT id, goal_suit, started_at, finished_at
	FROM games
	WHERE finished_at IS NOT NULL AND finished_at > ?
	ORDER BY finished_at ASC
	LIMIT ?
	`

	rows, err := e.db.Query(query, lastRunTime, batchSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе завершенных игр: %w", err)
	}
	defer rows.Close()

	var games []models.GameOLTP
	for rows.Next() {
		var game models.GameOLTP
		var startedAt, finishedAt sql.NullTime
		err := rows.Scan(&game.ID, &game.GoalSuit, &startedAt, &finishedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании игры: %w", err)
		}
		if startedAt.Valid {
			game.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			game.FinishedAt = finishedAt.Time
		}
		games = append(games, game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по играм: %w", err)
	}

	e.logger.Debug("Извлечено %d завершенных игр (после %v)", len(games), lastRunTime)
	return games, nil
}

// ExtractResults извлекает итоги игроков для указанных игр
func (e *GameExtractor) ExtractResults(gameIDs []string) ([]models.ResultOLTP, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	// Формируем плейсхолдеры для IN-условия
	placeholders := strings.Repeat("?,", len(gameIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
	SELECT game_id, player_id, goal_cards, bonus, final_cash, winner
	FROM game_players
	WHERE game_id IN (%s)
	ORDER BY game_id, player_id
	`, placeholders)

	args := make([]interface{}, len(gameIDs))
	for i, id := range gameIDs {
		args[i] = id
	}

	rows, err := e.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при запросе итогов игроков: %w", err)
	}
	defer rows.Close()

	var results []models.ResultOLTP
	for rows.Next() {
		var result models.ResultOLTP
		err := rows.Scan(
			&result.GameID,
			&result.PlayerID,
			&result.GoalCards,
			&result.Bonus,
			&result.FinalCash,
			&result.Winner,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании итога игрока: %w", err)
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по итогам игроков: %w", err)
	}

	e.logger.Debug("Извлечено %d итогов игроков для %d игр", len(results), len(gameIDs))
	return results, nil
}

// GetGameByID получает информацию об игре по ID
func (e *GameExtractor) GetGameByID(gameID string) (*models.GameOLTP, error) {
	var game models.GameOLTP
	var startedAt, finishedAt sql.NullTime

	err := e.db.QueryRow(`
		SELECT id, goal_suit, started_at, finished_at
		FROM games
		WHERE id = ?
	`, gameID).Scan(&game.ID, &game.GoalSuit, &startedAt, &finishedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("игра с ID %s не найдена", gameID)
		}
		return nil, fmt.Errorf("ошибка при запросе игры: %w", err)
	}

	if startedAt.Valid {
		game.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		game.FinishedAt = finishedAt.Time
	}
	return &game, nil
}
