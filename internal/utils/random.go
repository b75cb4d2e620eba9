package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GenerateCertificateNumber produces a unique certificate number of the
// form PREFIX-XXXXXXXX, the X's being the first eight hex characters of
// a v4 UUID, uppercased.
func GenerateCertificateNumber(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex[:8]))
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")
var digits = "0123456789"

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// Seed-data generators below. They only need to look plausible.

var commonFirstNames = []string{
	"Thabo", "Naledi", "Sipho", "Ayanda", "Lerato", "Mandla", "Zanele",
	"Kagiso", "Nomvula", "Bongani", "Precious", "Sello", "Thandiwe",
	"Lwazi", "Palesa", "Musa", "Ntombi", "Tshepo", "Busisiwe", "Andile",
}
var commonLastNames = []string{
	"Dlamini", "Nkosi", "Khumalo", "Mokoena", "Ndlovu", "Mahlangu",
	"Sithole", "Zulu", "Mabaso", "Tshabalala", "Radebe", "Molefe",
	"Ngcobo", "Maseko", "Phiri", "Mthembu",
}
var municipalities = []string{
	"Amandla Metro", "Umzinto Local", "Thekwini East", "Langa Valley",
}
var settlements = []string{
	"Extension 4", "Riverside Park", "Siyathemba", "Greenfields",
	"Zone 7", "Emthonjeni",
}
var stationNames = []string{
	"Central Police Station", "Riverside SAPS", "Emthonjeni SAPS",
	"Greenfields Police Station",
}
var ranks = []string{"Constable", "Sergeant", "Warrant Officer", "Captain"}

func GenerateRandomFullName() (first string, last string) {
	return commonFirstNames[rand.Intn(len(commonFirstNames))],
		commonLastNames[rand.Intn(len(commonLastNames))]
}

// GenerateEmailFromName derives a login email from a full name plus a
// random numeric suffix to dodge collisions in seed data.
func GenerateEmailFromName(first, last, emailDomain string) string {
	suffix := ""
	for i := 0; i < rand.Intn(3)+1; i++ {
		suffix += string(digits[rand.Intn(len(digits))])
	}
	local := strings.ToLower(first) + "." + strings.ToLower(last) + suffix
	return local + "@" + emailDomain
}

func GenerateRandomIDNumber() string {
	id := make([]byte, 13)
	for i := range id {
		id[i] = digits[rand.Intn(len(digits))]
	}
	return string(id)
}

func GenerateRandomPhoneNumber() string {
	return fmt.Sprintf("0%d%08d", rand.Intn(3)+6, rand.Intn(100000000))
}

func GenerateRandomPostalCode() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

func GenerateRandomUser(role domain.Role, password string, emailDomain string) (*domain.User, error) {
	first, last := GenerateRandomFullName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Email:        GenerateEmailFromName(first, last, emailDomain),
		PasswordHash: string(passwordHash),
		FullName:     first + " " + last,
		Role:         role,
		IsVerified:   true,
	}, nil
}

func GenerateRandomResidentProfile(user *domain.User) *domain.ResidentProfile {
	first, last, _ := strings.Cut(user.FullName, " ")
	return &domain.ResidentProfile{
		UserID:         user.ID,
		FirstName:      first,
		LastName:       last,
		IDNumber:       GenerateRandomIDNumber(),
		PhoneNumber:    GenerateRandomPhoneNumber(),
		Settlement:     settlements[rand.Intn(len(settlements))],
		UnitNumber:     fmt.Sprintf("%d", rand.Intn(400)+1),
		PostalCode:     GenerateRandomPostalCode(),
		IsOwner:        rand.Intn(2) == 0,
		Municipality:   municipalities[rand.Intn(len(municipalities))],
		WardNumber:     int32(rand.Intn(40) + 1),
		CouncillorName: func() string { f, l := GenerateRandomFullName(); return f + " " + l }(),
	}
}

func GenerateRandomLeaderProfile(user *domain.User) *domain.LeaderProfile {
	first, last, _ := strings.Cut(user.FullName, " ")
	return &domain.LeaderProfile{
		UserID:         user.ID,
		FirstName:      first,
		LastName:       last,
		IDNumber:       GenerateRandomIDNumber(),
		PhoneNumber:    GenerateRandomPhoneNumber(),
		Municipality:   municipalities[rand.Intn(len(municipalities))],
		WardNumber:     int32(rand.Intn(40) + 1),
		OfficeLocation: "Ward Office " + fmt.Sprintf("%d", rand.Intn(20)+1),
		Settlement:     settlements[rand.Intn(len(settlements))],
		UnitNumber:     fmt.Sprintf("%d", rand.Intn(400)+1),
		PostalCode:     GenerateRandomPostalCode(),
		IsApproved:     true,
	}
}

func GenerateRandomOfficerProfile(user *domain.User) *domain.OfficerProfile {
	first, last, _ := strings.Cut(user.FullName, " ")
	return &domain.OfficerProfile{
		UserID:       user.ID,
		FirstName:    first,
		LastName:     last,
		PhoneNumber:  GenerateRandomPhoneNumber(),
		BadgeNumber:  fmt.Sprintf("B%05d", rand.Intn(100000)),
		Rank:         ranks[rand.Intn(len(ranks))],
		StationName:  stationNames[rand.Intn(len(stationNames))],
		Municipality: municipalities[rand.Intn(len(municipalities))],
		PostalCode:   GenerateRandomPostalCode(),
		IsApproved:   true,
	}
}

// GenerateRandomWeeklySchedule picks a weekday with a morning or
// afternoon working window and an optional mid-window break.
func GenerateRandomWeeklySchedule(officerID int64) *domain.WeeklySchedule {
	windows := [][2]string{
		{"08:00", "12:00"},
		{"09:00", "13:00"},
		{"13:00", "17:00"},
	}
	window := windows[rand.Intn(len(windows))]

	ws := &domain.WeeklySchedule{
		OfficerID: officerID,
		DayOfWeek: int32(rand.Intn(5)), // weekdays only
		StartTime: window[0],
		EndTime:   window[1],
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if rand.Intn(2) == 0 {
		start, _ := time.Parse("15:04", window[0])
		breakStart := start.Add(90 * time.Minute)
		ws.Breaks = append(ws.Breaks, domain.ScheduledBreak{
			StartTime: breakStart.Format("15:04"),
			EndTime:   breakStart.Add(15 * time.Minute).Format("15:04"),
		})
	}

	return ws
}
