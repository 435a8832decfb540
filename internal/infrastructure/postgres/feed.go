package postgres

import (
	"fmt"
	"strings"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// feedSortColumns whitelists the sortable columns. Anything else never reaches SQL.
var feedSortColumns = map[model.SortField]string{
	model.SortByCreatedAt: "v.created_at",
	model.SortByUpdatedAt: "v.updated_at",
	model.SortByViews:     "v.views",
	model.SortByDuration:  "v.duration",
	model.SortByTitle:     "v.title",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildFeedFilter returns the WHERE clause and its arguments. Placeholders start at $1.
func buildFeedFilter(q model.FeedQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if q.Query != "" {
		args = append(args, "%"+escapeLike(q.Query)+"%")
		conds = append(conds, fmt.Sprintf(`v.title ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if q.OwnerID != nil {
		args = append(args, *q.OwnerID)
		conds = append(conds, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// buildFeedQuery renders the page query: filter, whitelisted sort with a stable
// insertion-order tie-break, pagination and per-row enrichment.
func buildFeedQuery(q model.FeedQuery) (string, []any, error) {
	column, ok := feedSortColumns[q.SortBy]
	if !ok {
		return "", nil, model.ErrInvalidSortField
	}
	direction := "DESC"
	if q.SortType == model.SortAsc {
		direction = "ASC"
	}

	where, args := buildFeedFilter(q)
	args = append(args, q.Limit, q.Offset())
	limitArg, offsetArg := len(args)-1, len(args)

	query := fmt.Sprintf(`
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		       u.full_name, u.avatar,
		       (SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id) AS likes_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = v.owner_id) AS subscribers_count
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		%s
		ORDER BY %s %s, v.created_at ASC, v.id ASC
		LIMIT $%d OFFSET $%d
	`, where, column, direction, limitArg, offsetArg)

	return query, args, nil
}

// buildFeedCount renders the total-count query for the same filter.
func buildFeedCount(q model.FeedQuery) (string, []any) {
	where, args := buildFeedFilter(q)
	return fmt.Sprintf(`SELECT COUNT(*) FROM videos v %s`, where), args
}
