package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 为每个测试建立独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Person{}, &models.Residence{}))
	return db
}

// fakePictureStore 内存头像存储，服务测试不碰磁盘
type fakePictureStore struct {
	files map[string][]byte
	seq   int
}

func newFakePictureStore() *fakePictureStore {
	return &fakePictureStore{files: make(map[string][]byte)}
}

func (s *fakePictureStore) Save(data []byte) (string, error) {
	s.seq++
	path := fmt.Sprintf("mem/%d.jpeg", s.seq)
	s.files[path] = data
	return path, nil
}

func (s *fakePictureStore) Load(path string) ([]byte, error) {
	data, ok := s.files[path]
	if path == "" || !ok {
		return nil, code.NewError(code.ErrPictureNotFound)
	}
	return data, nil
}

func (s *fakePictureStore) Delete(path string) error {
	delete(s.files, path)
	return nil
}

const testPassword = "Passw0rd!"

// seedUser 直接写库创建账户
func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	salt, err := utils.GenerateSalt()
	require.NoError(t, err)
	digest, err := utils.HashPassword(testPassword, salt)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Password: digest,
		Salt:     salt,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedPerson 直接写库创建人员档案
func seedPerson(t *testing.T, db *gorm.DB, userID uint, picturePath string) *models.Person {
	t.Helper()

	person := &models.Person{
		FirstName:          "John",
		LastName:           "Doe",
		Gender:             models.GenderMale,
		DateOfBirth:        "1990-05-01",
		PersonalCode:       "39005010018",
		Phone:              "+37060000000",
		Email:              "john@example.com",
		ProfilePicturePath: picturePath,
		UserID:             userID,
	}
	require.NoError(t, db.Create(person).Error)
	return person
}

// seedResidence 直接写库创建居住地址
func seedResidence(t *testing.T, db *gorm.DB, personID uint) *models.Residence {
	t.Helper()

	residence := &models.Residence{
		City:        "Riga",
		Street:      "Brivibas",
		HouseNumber: "10",
		PersonID:    personID,
	}
	require.NoError(t, db.Create(residence).Error)
	return residence
}

// personCreateInput 一份可以通过校验的登记输入
func personCreateInput() PersonCreateInput {
	return PersonCreateInput{
		FirstName:    "John",
		LastName:     "Doe",
		Gender:       models.GenderMale,
		DateOfBirth:  "1990-05-01",
		PersonalCode: "39005010018",
		Phone:        "+37060000000",
		Email:        "john@example.com",
		Picture:      []byte("fake-image-bytes"),
	}
}
