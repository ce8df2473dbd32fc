package postgres

import (
	"context"
	"database/sql"
	"time"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
	apperrors "agrorent-backend/pkg/errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const equipmentTable = "equipment"

type equipmentRepository struct {
	db *sql.DB
	qb *goqu.Database
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db, qb: goqu.New("postgres", db)}
}

func equipmentColumns() []any {
	return []any{
		"id", "owner_id", "owner_name", "owner_phone", "name", "description", "category",
		"images", "verification_docs", "verified", "price_per_hour", "price_per_day", "price_per_week",
		goqu.L("ST_Y(location::geometry)").As("lat"), goqu.L("ST_X(location::geometry)").As("lon"),
		"address", "village", "district", "state", "pincode",
		"available", "rating", "total_ratings", "times_rented", "created_at", "updated_at",
	}
}

func geographyPoint(p domain.GeoPoint) goqu.Expression {
	return goqu.L("ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography", p.Lon, p.Lat)
}

// scanEquipment reads equipmentColumns plus any trailing destinations.
func scanEquipment(s rowScanner, extra ...any) (domain.Equipment, error) {
	var e domain.Equipment
	var hourly, daily, weekly sql.NullFloat64
	dest := []any{
		&e.ID, &e.OwnerID, &e.OwnerName, &e.OwnerPhone, &e.Name, &e.Description, &e.Category,
		pq.Array(&e.Images), pq.Array(&e.VerificationDocs), &e.Verified, &hourly, &daily, &weekly,
		&e.Location.Lat, &e.Location.Lon,
		&e.Address, &e.Village, &e.District, &e.State, &e.Pincode,
		&e.Available, &e.Rating, &e.TotalRatings, &e.TimesRented, &e.CreatedAt, &e.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return e, err
	}
	e.PricePerHour = floatPtr(hourly)
	e.PricePerDay = floatPtr(daily)
	e.PricePerWeek = floatPtr(weekly)
	return e, nil
}

func (r *equipmentRepository) record(e *domain.Equipment) goqu.Record {
	images := e.Images
	if images == nil {
		images = []string{}
	}
	docs := e.VerificationDocs
	if docs == nil {
		docs = []string{}
	}
	return goqu.Record{
		"owner_name":        e.OwnerName,
		"owner_phone":       e.OwnerPhone,
		"name":              e.Name,
		"description":       e.Description,
		"category":          string(e.Category),
		"images":            pq.Array(images),
		"verification_docs": pq.Array(docs),
		"verified":          e.Verified,
		"price_per_hour":    nullFloat(e.PricePerHour),
		"price_per_day":     nullFloat(e.PricePerDay),
		"price_per_week":    nullFloat(e.PricePerWeek),
		"location":          geographyPoint(e.Location),
		"address":           e.Address,
		"village":           e.Village,
		"district":          e.District,
		"state":             e.State,
		"pincode":           e.Pincode,
		"available":         e.Available,
		"updated_at":        e.UpdatedAt,
	}
}

func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	logger.EnterMethod("equipmentRepository.Create", "ownerID", e.OwnerID)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	rec := r.record(e)
	rec["id"] = e.ID
	rec["owner_id"] = e.OwnerID
	rec["rating"] = e.Rating
	rec["total_ratings"] = e.TotalRatings
	rec["times_rented"] = e.TimesRented
	rec["created_at"] = e.CreatedAt

	query, args, err := r.qb.Insert(equipmentTable).Rows(rec).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	logger.DatabaseCall("INSERT", query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.ExitMethodWithError("equipmentRepository.Create", err)
		return translate(err, "equipment")
	}

	logger.ExitMethod("equipmentRepository.Create", "equipmentID", e.ID)
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query, args, err := r.qb.From(equipmentTable).Select(equipmentColumns()...).
		Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	e, err := scanEquipment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "equipment")
	}
	return &e, nil
}

// Update writes owner-editable fields. Counters and ratings have their own setters.
func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	e.UpdatedAt = time.Now().UTC()
	query, args, err := r.qb.Update(equipmentTable).Set(r.record(e)).
		Where(goqu.Ex{"id": e.ID}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err, "equipment")
	}
	return requireRow(res, "equipment")
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.qb.Delete(equipmentTable).Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err, "equipment")
	}
	return requireRow(res, "equipment")
}

func (r *equipmentRepository) query(ctx context.Context, ds *goqu.SelectDataset) ([]domain.Equipment, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	logger.DatabaseCall("SELECT", query)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "equipment")
	}
	defer rows.Close()

	var out []domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, translate(err, "equipment")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "equipment")
	}
	logger.DatabaseResult("SELECT", int64(len(out)), nil, "table", equipmentTable)
	return out, nil
}

func (r *equipmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Equipment, error) {
	return r.query(ctx, r.qb.From(equipmentTable).Select(equipmentColumns()...).
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.I("created_at").Desc()))
}

func (r *equipmentRepository) ListByCategory(ctx context.Context, category domain.EquipmentCategory, availableOnly bool) ([]domain.Equipment, error) {
	ds := r.qb.From(equipmentTable).Select(equipmentColumns()...).
		Where(goqu.Ex{"category": string(category)})
	if availableOnly {
		ds = ds.Where(goqu.Ex{"available": true})
	}
	return r.query(ctx, ds.Order(goqu.I("created_at").Desc()))
}

func (r *equipmentRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM equipment ORDER BY created_at`)
	if err != nil {
		return nil, translate(err, "equipment")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translate(err, "equipment")
		}
		ids = append(ids, id)
	}
	return ids, translate(rows.Err(), "equipment")
}

func priceColumn(p domain.PricingType) string {
	switch p {
	case domain.PricingTypeHourly:
		return "price_per_hour"
	case domain.PricingTypeWeekly:
		return "price_per_week"
	default:
		return "price_per_day"
	}
}

// Search applies the filter in SQL. A NULL rate never satisfies a price bound.
func (r *equipmentRepository) Search(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, error) {
	ds := r.qb.From(equipmentTable).Select(equipmentColumns()...)

	if f.AvailableOnly {
		ds = ds.Where(goqu.Ex{"available": true})
	}
	if f.Category != "" {
		ds = ds.Where(goqu.Ex{"category": string(f.Category)})
	}
	col := priceColumn(f.PricingType)
	if f.MinPrice != nil {
		ds = ds.Where(goqu.C(col).Gte(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		ds = ds.Where(goqu.C(col).Lte(*f.MaxPrice))
	}
	if f.Center != nil {
		ds = ds.Where(goqu.L("ST_DWithin(location, ?, ?)", geographyPoint(*f.Center), f.RadiusKm*1000))
	}

	return r.query(ctx, ds)
}

// Nearby relies on PostGIS for both the radius test and the reported distance.
func (r *equipmentRepository) Nearby(ctx context.Context, center domain.GeoPoint, radiusKm float64) ([]domain.EquipmentResult, error) {
	point := geographyPoint(center)
	distance := goqu.L("ST_Distance(location, ?) / 1000.0", point)

	cols := append(equipmentColumns(), distance.As("distance_km"))
	query, args, err := r.qb.From(equipmentTable).Select(cols...).
		Where(goqu.L("ST_DWithin(location, ?, ?)", point, radiusKm*1000)).
		Order(goqu.I("distance_km").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build nearby query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "equipment")
	}
	defer rows.Close()

	var out []domain.EquipmentResult
	for rows.Next() {
		var d float64
		e, err := scanEquipment(rows, &d)
		if err != nil {
			return nil, translate(err, "equipment")
		}
		out = append(out, domain.EquipmentResult{Equipment: e, DistanceKm: &d})
	}
	return out, translate(rows.Err(), "equipment")
}

func (r *equipmentRepository) IncrementTimesRented(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE equipment SET times_rented = times_rented + 1, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return translate(err, "equipment")
	}
	return requireRow(res, "equipment")
}

func (r *equipmentRepository) UpdateRating(ctx context.Context, id string, rating float64, totalRatings int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE equipment SET rating = $1, total_ratings = $2, updated_at = $3 WHERE id = $4`,
		rating, totalRatings, time.Now().UTC(), id)
	if err != nil {
		return translate(err, "equipment")
	}
	return requireRow(res, "equipment")
}
