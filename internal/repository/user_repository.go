package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/careconnect/careconnect-api/internal/database"
	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when inserting the user row fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateCaregiver is returned when inserting the caregiver sub-record fails inside the registration transaction.
	ErrCreateCaregiver = errors.New("user repository: create caregiver failed")
	// ErrCreateMember is returned when inserting the member sub-record fails inside the registration transaction.
	ErrCreateMember = errors.New("user repository: create member failed")
	// ErrCreateAddress is returned when inserting the address fails inside the registration transaction.
	ErrCreateAddress = errors.New("user repository: create address failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts the user and its sub-records atomically. Seed rows carry
// explicit primary keys, which can leave the Postgres id sequence behind the
// table; a new registration then collides on the primary key even though
// email and phone were checked just before. A duplicate-key failure realigns
// the sequence and retries the whole insert exactly once; an error on the
// retry is a genuine duplicate and surfaces as such.
func (r *GormUserRepository) Create(user *models.User) error {
	err := r.createTx(user)
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	if seqErr := r.reconcileIDSequence(); seqErr != nil {
		return fmt.Errorf("failed to reconcile user id sequence: %w", seqErr)
	}
	return r.createTx(user)
}

func (r *GormUserRepository) createTx(user *models.User) error {
	// Detach sub-records so the user insert stands alone; they are inserted
	// explicitly below with the generated user id.
	caregiver := user.Caregiver
	member := user.Member
	user.Caregiver = nil
	user.Member = nil
	defer func() {
		user.Caregiver = caregiver
		user.Member = member
	}()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateUser, err)
		}

		if caregiver != nil {
			caregiver.UserID = user.ID
			if err := tx.Create(caregiver).Error; err != nil {
				return fmt.Errorf("%w: %w", ErrCreateCaregiver, err)
			}
		}

		if member != nil {
			address := member.Address
			member.Address = nil
			member.UserID = user.ID
			if err := tx.Create(member).Error; err != nil {
				member.Address = address
				return fmt.Errorf("%w: %w", ErrCreateMember, err)
			}
			member.Address = address

			if address != nil {
				address.MemberID = member.UserID
				if err := tx.Create(address).Error; err != nil {
					return fmt.Errorf("%w: %w", ErrCreateAddress, err)
				}
			}
		}

		return nil
	})
}

func (r *GormUserRepository) reconcileIDSequence() error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return r.db.Exec(
		"SELECT setval(pg_get_serial_sequence('users','id'), (SELECT COALESCE(MAX(id), 1) FROM users))",
	).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether another user holds the email
func (r *GormUserRepository) EmailTaken(email string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PhoneTaken reports whether another user holds the phone number
func (r *GormUserRepository) PhoneTaken(phone string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where("phone_number = ?", phone)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists changed user fields
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Omit("Caregiver", "Member").Save(user).Error
}

// Delete removes the user and every dependent row in one transaction
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteCaregiverDependents(tx, id); err != nil {
			return err
		}
		if err := deleteMemberDependents(tx, id); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Caregiver{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Member{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// deleteCaregiverDependents clears rows hanging off a caregiver sub-record.
func deleteCaregiverDependents(tx *gorm.DB, userID uint64) error {
	if err := tx.Where("caregiver_id = ?", userID).Delete(&models.Appointment{}).Error; err != nil {
		return err
	}
	return tx.Where("caregiver_id = ?", userID).Delete(&models.JobApplication{}).Error
}

// deleteMemberDependents clears rows hanging off a member sub-record:
// appointments, applications to the member's jobs, the jobs, the address.
func deleteMemberDependents(tx *gorm.DB, userID uint64) error {
	if err := tx.Where("member_id = ?", userID).Delete(&models.Appointment{}).Error; err != nil {
		return err
	}
	jobIDs := tx.Model(&models.Job{}).Select("id").Where("member_id = ?", userID)
	if err := tx.Where("job_id IN (?)", jobIDs).Delete(&models.JobApplication{}).Error; err != nil {
		return err
	}
	if err := tx.Where("member_id = ?", userID).Delete(&models.Job{}).Error; err != nil {
		return err
	}
	return tx.Where("member_id = ?", userID).Delete(&models.Address{}).Error
}

// List retrieves users with filtering and pagination
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Search != nil {
		like := "%" + strings.ToLower(*filter.Search) + "%"
		query = query.Where(
			"LOWER(given_name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ?",
			like, like, like, "%"+*filter.Search+"%",
		)
	}
	if filter.City != nil {
		query = query.Where("LOWER(city) = ?", strings.ToLower(*filter.City))
	}
	if filter.HouseRules != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM members WHERE members.user_id = users.id AND LOWER(members.house_rules) LIKE ?)",
			"%"+strings.ToLower(*filter.HouseRules)+"%",
		)
	}
	if filter.Role != nil {
		caregiverExists := "EXISTS (SELECT 1 FROM caregivers WHERE caregivers.user_id = users.id)"
		memberExists := "EXISTS (SELECT 1 FROM members WHERE members.user_id = users.id)"
		switch *filter.Role {
		case RoleCaregiverOnly:
			query = query.Where(caregiverExists + " AND NOT " + memberExists)
		case RoleMemberOnly:
			query = query.Where("NOT " + caregiverExists + " AND " + memberExists)
		case RoleBoth:
			query = query.Where(caregiverExists + " AND " + memberExists)
		case RoleNeither:
			query = query.Where("NOT " + caregiverExists + " AND NOT " + memberExists)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("users.id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var users []models.User
	if err := listQuery.Preload("Caregiver").Preload("Member").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SetCaregiver attaches a caregiver sub-record to an existing user
func (r *GormUserRepository) SetCaregiver(cg *models.Caregiver) error {
	return r.db.Create(cg).Error
}

// RemoveCaregiver deletes the caregiver sub-record and its dependents
func (r *GormUserRepository) RemoveCaregiver(userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteCaregiverDependents(tx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Caregiver{}).Error
	})
}

// SetMember attaches a member sub-record plus its address to an existing user
func (r *GormUserRepository) SetMember(m *models.Member, addr *models.Address) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		address := m.Address
		m.Address = nil
		err := tx.Create(m).Error
		m.Address = address
		if err != nil {
			return err
		}
		if addr != nil {
			addr.MemberID = m.UserID
			return tx.Create(addr).Error
		}
		return nil
	})
}

// UpdateMember persists changed member fields and replaces the address row
func (r *GormUserRepository) UpdateMember(m *models.Member, addr *models.Address) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		address := m.Address
		m.Address = nil
		err := tx.Save(m).Error
		m.Address = address
		if err != nil {
			return err
		}
		if addr != nil {
			addr.MemberID = m.UserID
			return tx.Save(addr).Error
		}
		return nil
	})
}

// RemoveMember deletes the member sub-record and its dependents
func (r *GormUserRepository) RemoveMember(userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteMemberDependents(tx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Member{}).Error
	})
}

// DeleteMembersByStreet removes every member living on the street, including
// their user accounts, with full cascades.
func (r *GormUserRepository) DeleteMembersByStreet(street string) (int64, error) {
	var memberIDs []uint64
	err := r.db.Model(&models.Address{}).
		Where("LOWER(street) = ?", strings.ToLower(street)).
		Pluck("member_id", &memberIDs).Error
	if err != nil {
		return 0, err
	}
	if len(memberIDs) == 0 {
		return 0, nil
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range memberIDs {
			if err := deleteCaregiverDependents(tx, id); err != nil {
				return err
			}
			if err := deleteMemberDependents(tx, id); err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(&models.Caregiver{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", id).Delete(&models.Member{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.User{}, id).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(len(memberIDs)), nil
}
