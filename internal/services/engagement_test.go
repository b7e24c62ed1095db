package services

import (
  "math"
  "testing"
  "time"
)

func TestScoreFor(t *testing.T) {
  cases := []struct {
    name     string
    likes    int64
    comments int64
    age      time.Duration
    want     float64
  }{
    {"fresh post with no engagement", 0, 0, 0, 0},
    {"likes count once", 3, 0, 0, 3},
    {"comments count double", 0, 3, 0, 6},
    {"mixed engagement", 5, 2, 0, 9},
    {"one hour costs a tenth", 0, 0, time.Hour, -0.1},
    {"day-old post", 10, 5, 24 * time.Hour, 10 + 10 - 2.4},
    {"old enough to go negative", 1, 0, 20 * time.Hour, 1 - 2.0},
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := scoreFor(tc.likes, tc.comments, tc.age)
      if math.Abs(got-tc.want) > 1e-9 {
        t.Fatalf("scoreFor(%d, %d, %v) = %v, want %v", tc.likes, tc.comments, tc.age, got, tc.want)
      }
    })
  }
}

func TestScoreForCommentOutweighsLike(t *testing.T) {
  likeOnly := scoreFor(1, 0, 0)
  commentOnly := scoreFor(0, 1, 0)
  if commentOnly <= likeOnly {
    t.Fatalf("a comment (%v) should outweigh a like (%v)", commentOnly, likeOnly)
  }
}
