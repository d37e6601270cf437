package room

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teranga-labs/musee-api/internal/platform/apperr"
	"github.com/teranga-labs/musee-api/internal/platform/database/schema"
	"github.com/teranga-labs/musee-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func roomColumns() string {
	ref := schema.RefRoom
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		ref.ID, ref.NameFR, ref.NameEN, ref.NameWO,
		ref.DescriptionFR, ref.DescriptionEN, ref.DescriptionWO,
		ref.Theme, ref.Accessibility, ref.PanoramaURL, ref.Hotspots,
		ref.HasAudio, ref.HasInteractive, ref.CreatedAt,
	)
}

func scanRoom(row pgx.Row) (*Room, error) {
	r := &Room{}
	var hotspotsRaw []byte
	var accessibility string

	err := row.Scan(
		&r.ID, &r.Name.FR, &r.Name.EN, &r.Name.WO,
		&r.Description.FR, &r.Description.EN, &r.Description.WO,
		&r.Theme, &accessibility, &r.PanoramaURL, &hotspotsRaw,
		&r.HasAudio, &r.HasInteractive, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Accessibility = Accessibility(accessibility)
	if len(hotspotsRaw) > 0 {
		if err := json.Unmarshal(hotspotsRaw, &r.Hotspots); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		roomColumns(), schema.RefRoom.Table, schema.RefRoom.ID,
	)

	r, err := scanRoom(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_room")
	}
	return r, nil
}

func (repository *PostgresRepository) GetAll(context context.Context) ([]*Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		roomColumns(), schema.RefRoom.Table, schema.RefRoom.NameFR,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_rooms")
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_room")
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (repository *PostgresRepository) Save(context context.Context, r *Room) (*Room, error) {
	hotspotsRaw, err := json.Marshal(r.Hotspots)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	ref := schema.RefRoom
	if r.ID == 0 {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			RETURNING %s, %s
		`,
			ref.Table, ref.NameFR, ref.NameEN, ref.NameWO,
			ref.DescriptionFR, ref.DescriptionEN, ref.DescriptionWO,
			ref.Theme, ref.Accessibility, ref.PanoramaURL, ref.Hotspots,
			ref.HasAudio, ref.HasInteractive, ref.CreatedAt,
			ref.ID, ref.CreatedAt,
		)

		err = repository.db.QueryRow(context, query,
			r.Name.FR, r.Name.EN, r.Name.WO,
			r.Description.FR, r.Description.EN, r.Description.WO,
			r.Theme, string(r.Accessibility), r.PanoramaURL, hotspotsRaw,
			r.HasAudio, r.HasInteractive,
		).Scan(&r.ID, &r.CreatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "create_room")
		}
		return r, nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13
		WHERE %s = $1
		RETURNING %s
	`,
		ref.Table, ref.NameFR, ref.NameEN, ref.NameWO,
		ref.DescriptionFR, ref.DescriptionEN, ref.DescriptionWO,
		ref.Theme, ref.Accessibility, ref.PanoramaURL, ref.Hotspots,
		ref.HasAudio, ref.HasInteractive,
		ref.ID, ref.CreatedAt,
	)

	err = repository.db.QueryRow(context, query,
		r.ID,
		r.Name.FR, r.Name.EN, r.Name.WO,
		r.Description.FR, r.Description.EN, r.Description.WO,
		r.Theme, string(r.Accessibility), r.PanoramaURL, hotspotsRaw,
		r.HasAudio, r.HasInteractive,
	).Scan(&r.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "update_room")
	}
	return r, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefRoom.Table, schema.RefRoom.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_room")
	}
	return cmd.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) Search(context context.Context, f Filter) ([]*Room, error) {
	ref := schema.RefRoom
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, roomColumns(), ref.Table)
	args := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		args = append(args, searchTerm)
		query += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			ref.NameFR, len(args), ref.DescriptionFR, len(args), ref.DescriptionEN, len(args),
		)
	}
	if f.Theme != "" {
		args = append(args, f.Theme)
		query += fmt.Sprintf(" AND %s = $%d", ref.Theme, len(args))
	}
	if f.Accessibility != "" {
		args = append(args, string(f.Accessibility))
		query += fmt.Sprintf(" AND %s = $%d", ref.Accessibility, len(args))
	}
	if f.HasAudio != nil {
		args = append(args, *f.HasAudio)
		query += fmt.Sprintf(" AND %s = $%d", ref.HasAudio, len(args))
	}

	query += fmt.Sprintf(" ORDER BY %s ASC", ref.NameFR)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_rooms")
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_room")
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// DeleteWithArtworks removes the room and its artworks atomically. The
// transaction lives entirely inside the repository so pgx types never cross
// the domain boundary.
func (repository *PostgresRepository) DeleteWithArtworks(context context.Context, id int) (bool, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return false, dberr.Wrap(err, "begin_delete_room")
	}
	defer tx.Rollback(context)

	artworkQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefArtwork.Table, schema.RefArtwork.RoomID,
	)
	if _, err := tx.Exec(context, artworkQuery, id); err != nil {
		return false, dberr.Wrap(err, "delete_room_artworks")
	}

	roomQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefRoom.Table, schema.RefRoom.ID,
	)
	cmd, err := tx.Exec(context, roomQuery, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_room")
	}
	if cmd.RowsAffected() == 0 {
		// Nothing to commit, the room never existed.
		return false, nil
	}

	if err := tx.Commit(context); err != nil {
		return false, dberr.Wrap(err, "commit_delete_room")
	}
	return true, nil
}

func (repository *PostgresRepository) CountArtworks(context context.Context) (map[int]int, error) {
	query := fmt.Sprintf(`SELECT %s, count(*) FROM %s GROUP BY %s`,
		schema.RefArtwork.RoomID, schema.RefArtwork.Table, schema.RefArtwork.RoomID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "count_room_artworks")
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var roomID, total int
		if err := rows.Scan(&roomID, &total); err != nil {
			return nil, dberr.Wrap(err, "scan_room_artwork_count")
		}
		counts[roomID] = total
	}
	return counts, rows.Err()
}
