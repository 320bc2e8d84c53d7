// Package sweeper backfills ABSENT attendance records for members who never
// punched in. It runs once a day from a background worker, but RunOnce takes
// "now" as an argument so tests and the manual admin trigger drive the same
// code path.
package sweeper

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	attendancestore "github.com/openngo/fieldpunch/internal/app/store/attendance"
	organizationstore "github.com/openngo/fieldpunch/internal/app/store/organizations"
	userstore "github.com/openngo/fieldpunch/internal/app/store/users"
	"github.com/openngo/fieldpunch/internal/app/system/attendance"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

type Sweeper struct {
	orgs   *organizationstore.Store
	users  *userstore.Store
	ledger *attendancestore.Store
	loc    *time.Location
	log    *zap.Logger
}

func New(db *mongo.Database, loc *time.Location, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		orgs:   organizationstore.New(db),
		users:  userstore.New(db),
		ledger: attendancestore.New(db),
		loc:    loc,
		log:    logger,
	}
}

// Result summarizes one sweep run.
type Result struct {
	Organizations int `json:"organizations"`
	Inserted      int `json:"inserted"`
	Failed        int `json:"failed_organizations"`
}

// RunOnce sweeps every organization for the day containing now. Organizations
// are processed independently: a failure in one is logged with its ID and the
// loop continues. Safe to re-run for the same day — members with any existing
// record (whatever its status) are skipped, and the unordered insert drops
// duplicate-key races with the check-in deriver.
//
// Only a failure to list organizations aborts the run.
func (s *Sweeper) RunOnce(ctx context.Context, now time.Time) (Result, error) {
	today := attendance.DayOf(now, s.loc)

	orgs, err := s.orgs.All(ctx)
	if err != nil {
		return Result{}, err
	}

	res := Result{Organizations: len(orgs)}
	for _, org := range orgs {
		n, err := s.sweepOrg(ctx, org.ID, today)
		if err != nil {
			res.Failed++
			s.log.Error("absentee sweep failed for organization",
				zap.String("organization_id", org.ID.Hex()),
				zap.Time("date", today),
				zap.Error(err))
			continue
		}
		res.Inserted += n
	}

	s.log.Info("absentee sweep completed",
		zap.Time("date", today),
		zap.Int("organizations", res.Organizations),
		zap.Int("inserted", res.Inserted),
		zap.Int("failed_organizations", res.Failed))
	return res, nil
}

func (s *Sweeper) sweepOrg(ctx context.Context, orgID primitive.ObjectID, today time.Time) (int, error) {
	attended, err := s.ledger.DistinctAttendedUsers(ctx, today, orgID)
	if err != nil {
		return 0, err
	}
	seen := make(map[primitive.ObjectID]struct{}, len(attended))
	for _, id := range attended {
		seen[id] = struct{}{}
	}

	members, err := s.users.MembersByOrganization(ctx, orgID)
	if err != nil {
		return 0, err
	}

	var absentees []models.AttendanceRecord
	for _, m := range members {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		absentees = append(absentees, models.AttendanceRecord{
			UserID:         m.ID,
			OrganizationID: orgID,
			Date:           today,
			Status:         models.StatusAbsent,
		})
	}
	if len(absentees) == 0 {
		return 0, nil
	}
	return s.ledger.InsertAbsentees(ctx, absentees)
}
