package service

import "github.com/shiplog/backend/internal/model"

// fanOut は 1 つのドメインイベントを受信者ごとのチェンジログ行に展開する。
// 受信者は重複排除され、correlationID はイベント種別のスコープに応じて
// project_id / group_id のどちらか一方にだけセットされる。
func fanOut(event model.ChangelogEvent, extra, correlationID string, recipients []string) []*model.Changelog {
	seen := make(map[string]struct{}, len(recipients))
	var logs []*model.Changelog
	for _, userID := range recipients {
		if userID == "" {
			continue
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}

		l := &model.Changelog{
			OwnerID:      userID,
			Event:        event,
			ExtraContent: extra,
		}
		id := correlationID
		switch event.Scope() {
		case model.ScopeProject:
			l.ProjectID = &id
		case model.ScopeGroup:
			l.GroupID = &id
		}
		logs = append(logs, l)
	}
	return logs
}

// グループイベント

func invitedGroupLog(userID, groupID, groupName string) []*model.Changelog {
	return fanOut(model.EventInvitedGroup, groupName, groupID, []string{userID})
}

func joinedGroupLogs(groupID, groupName string, recipients []string) []*model.Changelog {
	return fanOut(model.EventJoinedGroup, groupName, groupID, recipients)
}

func roleChangedLog(userID, groupID string, newRole model.Role) []*model.Changelog {
	return fanOut(model.EventRoleChanged, string(newRole), groupID, []string{userID})
}

func leftGroupLog(userID, groupID, groupName string) []*model.Changelog {
	return fanOut(model.EventLeftGroup, groupName, groupID, []string{userID})
}

// プロジェクトイベント

func projectAddedLogs(projectID, projectName string, recipients []string) []*model.Changelog {
	return fanOut(model.EventProjectAdded, projectName, projectID, recipients)
}

func projectRemovedLogs(projectID, projectName string, recipients []string) []*model.Changelog {
	return fanOut(model.EventProjectRemoved, projectName, projectID, recipients)
}

func updateEventLogs(event model.ChangelogEvent, projectID, targetVersion string, recipients []string) []*model.Changelog {
	return fanOut(event, targetVersion, projectID, recipients)
}
