package services

import (
	"errors"
	"testing"
	"time"

	"github.com/campus_management/internal/models"
	"github.com/campus_management/internal/repositories"
)

func newTestClassroomService(t *testing.T) ClassroomService {
	t.Helper()
	gormDB := setupTestDB(t)
	return NewClassroomService(repositories.NewGormClassroomRepository(gormDB))
}

func createRoom(t *testing.T, svc ClassroomService, roomNo string, capacity int) *models.Classroom {
	t.Helper()
	room, err := svc.CreateClassroom(&models.Classroom{
		RoomNo:   roomNo,
		Building: "A",
		Floor:    3,
		Capacity: capacity,
		RoomType: "多媒体",
	})
	if err != nil {
		t.Fatalf("CreateClassroom(%s) failed: %v", roomNo, err)
	}
	return room
}

func TestCreateClassroomDuplicateRoomNo(t *testing.T) {
	svc := newTestClassroomService(t)
	createRoom(t, svc, "A-301", 60)

	if _, err := svc.CreateClassroom(&models.Classroom{
		RoomNo:   "A-301",
		Building: "A",
		Floor:    3,
		Capacity: 40,
		RoomType: "普通",
	}); !errors.Is(err, ErrRoomNoTaken) {
		t.Fatalf("err = %v, want ErrRoomNoTaken", err)
	}
}

func TestBookClassroomConflict(t *testing.T) {
	svc := newTestClassroomService(t)
	room := createRoom(t, svc, "A-301", 60)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	first := BookingRequest{
		Purpose:   "高等数学",
		BookedBy:  "alice",
		StartTime: base,
		EndTime:   base.Add(2 * time.Hour),
	}
	if _, err := svc.BookClassroom(room.ID, first); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// 与已有占用部分重叠
	overlap := BookingRequest{
		Purpose:   "线性代数",
		BookedBy:  "bob",
		StartTime: base.Add(time.Hour),
		EndTime:   base.Add(3 * time.Hour),
	}
	if _, err := svc.BookClassroom(room.ID, overlap); !errors.Is(err, ErrTimeSlotConflict) {
		t.Fatalf("err = %v, want ErrTimeSlotConflict", err)
	}

	// 紧邻的时间段不算冲突
	adjacent := BookingRequest{
		Purpose:   "线性代数",
		BookedBy:  "bob",
		StartTime: base.Add(2 * time.Hour),
		EndTime:   base.Add(4 * time.Hour),
	}
	if _, err := svc.BookClassroom(room.ID, adjacent); err != nil {
		t.Fatalf("adjacent booking failed: %v", err)
	}
}

func TestBookClassroomInvalidSlot(t *testing.T) {
	svc := newTestClassroomService(t)
	room := createRoom(t, svc, "A-301", 60)

	now := time.Now()
	if _, err := svc.BookClassroom(room.ID, BookingRequest{
		Purpose:   "考试",
		BookedBy:  "alice",
		StartTime: now,
		EndTime:   now, // 结束不晚于开始
	}); !errors.Is(err, ErrInvalidTimeSlot) {
		t.Fatalf("err = %v, want ErrInvalidTimeSlot", err)
	}
}

func TestFindAvailable(t *testing.T) {
	svc := newTestClassroomService(t)
	big := createRoom(t, svc, "A-301", 120)
	small := createRoom(t, svc, "A-302", 30)

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if _, err := svc.BookClassroom(big.ID, BookingRequest{
		Purpose:   "考试",
		BookedBy:  "alice",
		StartTime: base,
		EndTime:   base.Add(2 * time.Hour),
	}); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// 占用时段内只有小教室可用
	rooms, err := svc.FindAvailable(base, base.Add(time.Hour), 0)
	if err != nil {
		t.Fatalf("FindAvailable failed: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != small.ID {
		t.Fatalf("expected only room %d to be available, got %v", small.ID, rooms)
	}

	// 容量过滤后无结果
	rooms, err = svc.FindAvailable(base, base.Add(time.Hour), 50)
	if err != nil {
		t.Fatalf("FindAvailable failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected no rooms with capacity >= 50, got %v", rooms)
	}

	// 占用结束后大教室恢复可用
	rooms, err = svc.FindAvailable(base.Add(2*time.Hour), base.Add(3*time.Hour), 50)
	if err != nil {
		t.Fatalf("FindAvailable failed: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != big.ID {
		t.Fatalf("expected only room %d to be available, got %v", big.ID, rooms)
	}
}

func TestDeleteClassroomNotFound(t *testing.T) {
	svc := newTestClassroomService(t)
	if err := svc.DeleteClassroom(9999); !errors.Is(err, ErrClassroomNotFound) {
		t.Fatalf("err = %v, want ErrClassroomNotFound", err)
	}
}

func TestUpdateClassroomNoFields(t *testing.T) {
	svc := newTestClassroomService(t)
	if _, err := svc.UpdateClassroom(1, UpdateClassroomPayload{}); !errors.Is(err, ErrNoUpdatableFields) {
		t.Fatalf("err = %v, want ErrNoUpdatableFields", err)
	}
}
