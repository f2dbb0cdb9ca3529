package app_errors

import "errors"

var ErrNoPayload = errors.New("no course data provided")
var ErrNoLessonPayload = errors.New("no lesson data provided")
var ErrInvalidCourseID = errors.New("invalid course id")
var ErrInvalidPaging = errors.New("invalid paging parameters")
var ErrCourseNotFound = errors.New("course not found")
var ErrCourseURLTaken = errors.New("course with this url already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user with this email already exists")
var ErrEmailRequired = errors.New("email is required")
var ErrPasswordRequired = errors.New("password is required")
var ErrIncorrectPassword = errors.New("invalid email or password")
var ErrTokenExpired = errors.New("token expired")
var ErrInvalidToken = errors.New("invalid token")
var ErrNotAdmin = errors.New("admin access required")
var ErrNotImage = errors.New("not an image")
var ErrFileSize = errors.New("file size error")
var ErrIconNotFound = errors.New("icon not found")
var ErrSeqNoConflict = errors.New("sequence number conflict")
