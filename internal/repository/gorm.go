package repository

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// GormStore is the relational implementation of Store. Production runs it on
// Postgres; the tests run the same code on an in-memory SQLite database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore connects to Postgres and migrates the schema.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to connect to database: %w", err)
	}
	return NewGormStoreWithDB(db)
}

// NewGormStoreWithDB wraps an already-open GORM handle. The handle must have
// TranslateError enabled so unique-constraint violations are detectable.
func NewGormStoreWithDB(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&model.User{}, &model.Item{}, &model.Bid{}, &model.Notification{}); err != nil {
		return nil, fmt.Errorf("repository: failed to migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Users() UserRepository                 { return &gormUsers{s.db} }
func (s *GormStore) Items() ItemRepository                 { return &gormItems{s.db} }
func (s *GormStore) Bids() BidRepository                   { return &gormBids{s.db} }
func (s *GormStore) Notifications() NotificationRepository { return &gormNotifications{s.db} }

type gormUsers struct{ db *gorm.DB }

func (r *gormUsers) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrDuplicateUser)
		}
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return nil
}

func (r *gormUsers) GetByID(userID string) (model.User, error) {
	var user model.User
	if err := r.db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

func (r *gormUsers) GetByUsername(username string) (model.User, error) {
	var user model.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("get user by username %s: %w", username, auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user by username %s: %w", username, err)
	}
	return user, nil
}

func (r *gormUsers) GetByEmail(email string) (model.User, error) {
	var user model.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("get user by email %s: %w", email, auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user by email %s: %w", email, err)
	}
	return user, nil
}

func (r *gormUsers) GetByResetToken(token string) (model.User, error) {
	var user model.User
	if err := r.db.First(&user, "reset_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("get user by reset token: %w", auctionerrors.ErrUserNotFound)
		}
		return model.User{}, fmt.Errorf("get user by reset token: %w", err)
	}
	return user, nil
}

func (r *gormUsers) Update(user model.User) error {
	// Save writes every column, including cleared reset-token pointers.
	if err := r.db.Save(&user).Error; err != nil {
		return fmt.Errorf("update user %s: %w", user.UserID, err)
	}
	return nil
}

type gormItems struct{ db *gorm.DB }

func (r *gormItems) Create(item *model.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("create item %s: %w", item.ItemID, err)
	}
	return nil
}

func (r *gormItems) Get(itemID string) (model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, "item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Item{}, fmt.Errorf("get item %s: %w", itemID, auctionerrors.ErrItemNotFound)
		}
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, err)
	}
	return item, nil
}

func (r *gormItems) List() ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Order("created_at").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (r *gormItems) Update(item model.Item) error {
	result := r.db.Model(&model.Item{}).Where("item_id = ?", item.ItemID).Updates(map[string]any{
		"name":        item.Name,
		"description": item.Description,
		"end_time":    item.EndTime,
	})
	if result.Error != nil {
		return fmt.Errorf("update item %s: %w", item.ItemID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update item %s: %w", item.ItemID, auctionerrors.ErrItemNotFound)
	}
	return nil
}

func (r *gormItems) Delete(itemID string) error {
	result := r.db.Delete(&model.Item{}, "item_id = ?", itemID)
	if result.Error != nil {
		return fmt.Errorf("delete item %s: %w", itemID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	return nil
}

type gormBids struct{ db *gorm.DB }

func (r *gormBids) RecordAccepted(bid model.Bid, priorPrice float64) (*model.Bid, error) {
	var displaced *model.Bid
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var item model.Item
		if err := tx.First(&item, "item_id = ?", bid.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auctionerrors.ErrItemNotFound
			}
			return err
		}

		var prev model.Bid
		switch err := tx.Where("item_id = ?", bid.ItemID).Order("created_at DESC, amount DESC").First(&prev).Error; {
		case err == nil:
			displaced = &prev
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first bid on the item
		default:
			return err
		}

		if err := tx.Create(&bid).Error; err != nil {
			return err
		}

		// Conditional update keyed on the price the caller read. Zero rows
		// affected means another acceptance got in first; the rollback also
		// discards the bid row created above.
		result := tx.Model(&model.Item{}).
			Where("item_id = ? AND current_price = ?", bid.ItemID, priorPrice).
			Update("current_price", bid.Amount)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return auctionerrors.ErrPriceConflict
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record bid for item %s: %w", bid.ItemID, err)
	}
	return displaced, nil
}

func (r *gormBids) ListByItem(itemID string) ([]model.Bid, error) {
	var bids []model.Bid
	if err := r.db.Where("item_id = ?", itemID).Order("created_at DESC, amount DESC").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("list bids for item %s: %w", itemID, err)
	}
	return bids, nil
}

type gormNotifications struct{ db *gorm.DB }

func (r *gormNotifications) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("create notification for user %s: %w", notification.UserID, err)
	}
	return nil
}

func (r *gormNotifications) ListUnread(userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("user_id = ? AND is_read = ?", userID, false).Order("created_at").Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list unread notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

func (r *gormNotifications) MarkRead(userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND notification_id IN ?", userID, ids).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("mark notifications read for user %s: %w", userID, err)
	}
	return nil
}
