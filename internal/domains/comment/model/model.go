package model

import (
	"fmt"
	roomModel "roomly/internal/domains/room/model"
	userModel "roomly/internal/domains/user/model"
	"roomly/shared/model"
	"time"
)

const (
	TableName  = "comments"
	EntityName = "comment"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldRoomID      = "room_id"
	FieldCommentDate = "comment_date"
	FieldContent     = "content"
	FieldRating      = "rating"
)

type Comment struct {
	ID          int64     `db:"id"           auto:"true"`
	UserID      int64     `db:"user_id"`
	RoomID      int64     `db:"room_id"`
	CommentDate time.Time `db:"comment_date"`
	Content     string    `db:"content"`
	Rating      int       `db:"rating"`
	model.Metadata
}

// CommentDetail carries the author and room columns shown next to a comment.
type CommentDetail struct {
	Comment
	UserName   string  `db:"user_name"   table:"users" column:"name"`
	UserAvatar *string `db:"user_avatar" table:"users" column:"avatar"`
	RoomName   string  `db:"room_name"   table:"rooms"`
	RoomImage  *string `db:"room_image"  table:"rooms" column:"image"`
}

func (CommentDetail) JoinQuery() string {
	return fmt.Sprintf(
		"JOIN %[1]s ON %[1]s.%[2]s = %[3]s.%[4]s JOIN %[5]s ON %[5]s.%[6]s = %[3]s.%[7]s",
		userModel.TableName, userModel.FieldID, TableName, FieldUserID,
		roomModel.TableName, roomModel.FieldID, FieldRoomID,
	)
}
