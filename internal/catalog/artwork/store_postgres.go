package artwork

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teranga-labs/musee-api/internal/platform/database/schema"
	"github.com/teranga-labs/musee-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func artworkColumns() string {
	ref := schema.RefArtwork
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		ref.ID, ref.Title, ref.DescriptionFR, ref.DescriptionEN, ref.DescriptionWO,
		ref.Category, ref.Period, ref.Origin, ref.RoomID,
		ref.ImageURL, ref.AudioURL, ref.VideoURL, ref.QRCodeURL,
		ref.Popularity, ref.ViewCount, ref.CreatedAt,
	)
}

func scanArtwork(row pgx.Row) (*Artwork, error) {
	a := &Artwork{}
	err := row.Scan(
		&a.ID, &a.Title, &a.Description.FR, &a.Description.EN, &a.Description.WO,
		&a.Category, &a.Period, &a.Origin, &a.RoomID,
		&a.ImageURL, &a.AudioURL, &a.VideoURL, &a.QRCodeURL,
		&a.Popularity, &a.ViewCount, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (repository *PostgresRepository) collect(rows pgx.Rows) ([]*Artwork, error) {
	defer rows.Close()

	var artworks []*Artwork
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_artwork")
		}
		artworks = append(artworks, a)
	}
	return artworks, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*Artwork, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		artworkColumns(), schema.RefArtwork.Table, schema.RefArtwork.ID,
	)

	a, err := scanArtwork(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_artwork")
	}
	return a, nil
}

func (repository *PostgresRepository) GetAll(context context.Context) ([]*Artwork, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		artworkColumns(), schema.RefArtwork.Table, schema.RefArtwork.Title,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_artworks")
	}
	return repository.collect(rows)
}

func (repository *PostgresRepository) Save(context context.Context, a *Artwork) (*Artwork, error) {
	ref := schema.RefArtwork
	if a.ID == 0 {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
			RETURNING %s, %s
		`,
			ref.Table, ref.Title, ref.DescriptionFR, ref.DescriptionEN, ref.DescriptionWO,
			ref.Category, ref.Period, ref.Origin, ref.RoomID,
			ref.ImageURL, ref.AudioURL, ref.VideoURL, ref.QRCodeURL,
			ref.Popularity, ref.ViewCount, ref.CreatedAt,
			ref.ID, ref.CreatedAt,
		)

		err := repository.db.QueryRow(context, query,
			a.Title, a.Description.FR, a.Description.EN, a.Description.WO,
			a.Category, a.Period, a.Origin, a.RoomID,
			a.ImageURL, a.AudioURL, a.VideoURL, a.QRCodeURL,
			a.Popularity, a.ViewCount,
		).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "create_artwork")
		}
		return a, nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = $15
		WHERE %s = $1
		RETURNING %s
	`,
		ref.Table, ref.Title, ref.DescriptionFR, ref.DescriptionEN, ref.DescriptionWO,
		ref.Category, ref.Period, ref.Origin, ref.RoomID,
		ref.ImageURL, ref.AudioURL, ref.VideoURL, ref.QRCodeURL,
		ref.Popularity, ref.ViewCount,
		ref.ID, ref.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		a.ID,
		a.Title, a.Description.FR, a.Description.EN, a.Description.WO,
		a.Category, a.Period, a.Origin, a.RoomID,
		a.ImageURL, a.AudioURL, a.VideoURL, a.QRCodeURL,
		a.Popularity, a.ViewCount,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "update_artwork")
	}
	return a, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefArtwork.Table, schema.RefArtwork.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_artwork")
	}
	return cmd.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) Search(context context.Context, f Filter) ([]*Artwork, error) {
	ref := schema.RefArtwork
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, artworkColumns(), ref.Table)
	args := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		args = append(args, searchTerm)
		query += fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			ref.Title, len(args), ref.DescriptionFR, len(args), ref.DescriptionEN, len(args),
		)
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND %s = $%d", ref.Category, len(args))
	}
	if f.Period != "" {
		args = append(args, f.Period)
		query += fmt.Sprintf(" AND %s = $%d", ref.Period, len(args))
	}
	if f.Origin != "" {
		args = append(args, f.Origin)
		query += fmt.Sprintf(" AND %s = $%d", ref.Origin, len(args))
	}
	if f.RoomID > 0 {
		args = append(args, f.RoomID)
		query += fmt.Sprintf(" AND %s = $%d", ref.RoomID, len(args))
	}

	query += fmt.Sprintf(" ORDER BY %s ASC", ref.Title)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_artworks")
	}
	return repository.collect(rows)
}

func (repository *PostgresRepository) GetByRoomID(context context.Context, roomID int) ([]*Artwork, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		artworkColumns(), schema.RefArtwork.Table, schema.RefArtwork.RoomID, schema.RefArtwork.Title,
	)

	rows, err := repository.db.Query(context, query, roomID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_room_artworks")
	}
	return repository.collect(rows)
}

func (repository *PostgresRepository) GetByCategory(context context.Context, category string) ([]*Artwork, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		artworkColumns(), schema.RefArtwork.Table, schema.RefArtwork.Category, schema.RefArtwork.Title,
	)

	rows, err := repository.db.Query(context, query, category)
	if err != nil {
		return nil, dberr.Wrap(err, "list_category_artworks")
	}
	return repository.collect(rows)
}

func (repository *PostgresRepository) GetPopular(context context.Context, limit int) ([]*Artwork, error) {
	if limit <= 0 {
		return nil, nil
	}

	ref := schema.RefArtwork
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC LIMIT $1`,
		artworkColumns(), ref.Table, ref.Popularity, ref.ViewCount,
	)

	rows, err := repository.db.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_popular_artworks")
	}
	return repository.collect(rows)
}

func (repository *PostgresRepository) IncrementViewCount(context context.Context, id int) (bool, error) {
	ref := schema.RefArtwork
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		ref.Table, ref.ViewCount, ref.ViewCount, ref.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "increment_view_count")
	}
	return cmd.RowsAffected() > 0, nil
}
